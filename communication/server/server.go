package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"tabletop/communication"
	"tabletop/engine"

	"github.com/rs/zerolog/log"
)

// ServerCommunicator holds the published record and queues sent moves. The
// game master uses it directly, players reach it over HTTP.
type ServerCommunicator struct {
	record *engine.MatchRecord
	moves  chan communication.MoveMessage
	mutex  sync.RWMutex
}

func NewServerCommunicator() *ServerCommunicator {
	return &ServerCommunicator{
		moves: make(chan communication.MoveMessage, 100),
	}
}

func (sc *ServerCommunicator) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /record", sc.handleGetRecord)
	mux.HandleFunc("POST /record", sc.handleUpdateRecord)
	mux.HandleFunc("POST /move", sc.handleSendMove)
	mux.HandleFunc("GET /move", sc.handleReceiveMove)
	return mux
}

// Start serves the communicator on addr until the server fails.
func (sc *ServerCommunicator) Start(addr string) error {
	log.Info().Msgf("serving match on %s", addr)
	return http.ListenAndServe(addr, sc.Handler())
}

func (sc *ServerCommunicator) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := sc.GetRecord(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

func (sc *ServerCommunicator) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	var record engine.MatchRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sc.UpdateRecord(r.Context(), record)
	w.WriteHeader(http.StatusOK)
}

func (sc *ServerCommunicator) handleSendMove(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	var move communication.MoveMessage
	if err := decoder.Decode(&move); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := sc.SendMove(r.Context(), move); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (sc *ServerCommunicator) handleReceiveMove(w http.ResponseWriter, r *http.Request) {
	select {
	case move := <-sc.moves:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(move)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (sc *ServerCommunicator) GetRecord(context.Context) (engine.MatchRecord, error) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	if sc.record == nil {
		return engine.MatchRecord{}, communication.ErrNoRecord
	}
	return *sc.record, nil
}

func (sc *ServerCommunicator) UpdateRecord(_ context.Context, record engine.MatchRecord) error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	sc.record = &record
	return nil
}

func (sc *ServerCommunicator) SendMove(ctx context.Context, move communication.MoveMessage) error {
	select {
	case sc.moves <- move:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (sc *ServerCommunicator) ReceiveMove(ctx context.Context) (communication.MoveMessage, error) {
	select {
	case move := <-sc.moves:
		return move, nil
	case <-ctx.Done():
		return communication.MoveMessage{}, ctx.Err()
	}
}
