package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tabletop/communication"
	"tabletop/engine"
)

const pollInterval = 20 * time.Millisecond

type ClientCommunicator struct {
	serverURL string
	client    *http.Client
}

func NewClientCommunicator(serverURL string) *ClientCommunicator {
	return &ClientCommunicator{
		serverURL: serverURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (cc *ClientCommunicator) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, cc.serverURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := cc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to %s %s: %w", method, path, err)
	}
	return resp, nil
}

func (cc *ClientCommunicator) GetRecord(ctx context.Context) (engine.MatchRecord, error) {
	resp, err := cc.do(ctx, http.MethodGet, "/record", nil)
	if err != nil {
		return engine.MatchRecord{}, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return engine.MatchRecord{}, communication.ErrNoRecord
	default:
		return engine.MatchRecord{}, statusError(resp)
	}
	var record engine.MatchRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return engine.MatchRecord{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return record, nil
}

func (cc *ClientCommunicator) UpdateRecord(ctx context.Context, record engine.MatchRecord) error {
	resp, err := cc.do(ctx, http.MethodPost, "/record", record)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func (cc *ClientCommunicator) SendMove(ctx context.Context, move communication.MoveMessage) error {
	resp, err := cc.do(ctx, http.MethodPost, "/move", move)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

// ReceiveMove polls the server until a move is queued.
func (cc *ClientCommunicator) ReceiveMove(ctx context.Context) (communication.MoveMessage, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		move, ok, err := cc.receiveOnce(ctx)
		if err != nil || ok {
			return move, err
		}
		select {
		case <-ctx.Done():
			return communication.MoveMessage{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (cc *ClientCommunicator) receiveOnce(ctx context.Context) (communication.MoveMessage, bool, error) {
	resp, err := cc.do(ctx, http.MethodGet, "/move", nil)
	if err != nil {
		return communication.MoveMessage{}, false, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusNoContent:
		return communication.MoveMessage{}, false, nil
	case http.StatusOK:
	default:
		return communication.MoveMessage{}, false, statusError(resp)
	}
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	var move communication.MoveMessage
	if err := decoder.Decode(&move); err != nil {
		return communication.MoveMessage{}, false, fmt.Errorf("failed to decode move: %w", err)
	}
	return move, true, nil
}

func statusError(resp *http.Response) error {
	out, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
}
