package phalanx

import (
	"fmt"
	"os"
	"sync"

	"tabletop/game"

	"github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
	"github.com/rs/zerolog/log"
)

// NetworkConfig describes the value network: one input per square, the
// hidden layers, and a single output.
type NetworkConfig struct {
	HiddenLayers []int
	LearningRate float64
	Iterations   int
}

func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		HiddenLayers: []int{64, 16},
		LearningRate: 0.01,
		Iterations:   20,
	}
}

func NewNetwork(config NetworkConfig) *deep.Neural {
	layout := append(append([]int{}, config.HiddenLayers...), 1)
	return deep.NewNeural(&deep.Config{
		Inputs:     Width * Height,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})
}

// Features maps ZERO's pieces to 1, ONE's to -1 and empty squares to 0.
func Features(state State) []float64 {
	features := make([]float64, 0, Width*Height)
	for _, row := range state.board {
		for _, owner := range row {
			if owner == game.None {
				features = append(features, 0)
			} else {
				features = append(features, owner.ScoreModifier())
			}
		}
	}
	return features
}

// Neural scores positions with a trained network. The network keeps its
// activations between calls, so predictions are serialized.
type Neural struct {
	mu      sync.Mutex
	network *deep.Neural
}

func NewNeural(network *deep.Neural) *Neural {
	if network.Config.Inputs != Width*Height {
		panic(fmt.Sprintf("network takes %d inputs, a board has %d squares", network.Config.Inputs, Width*Height))
	}
	return &Neural{network: network}
}

// LoadNeural reads a network saved with SaveNetwork.
func LoadNeural(path string) (*Neural, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network: %w", err)
	}
	network, err := deep.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode network: %w", err)
	}
	return NewNeural(network), nil
}

func SaveNetwork(network *deep.Neural, path string) error {
	data, err := network.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write network: %w", err)
	}
	return nil
}

// Network returns the wrapped network, for further training.
func (n *Neural) Network() *deep.Neural {
	return n.network
}

func (*Neural) Name() string {
	return "neural"
}

func (*Neural) ListMoves(node *Node) []Move {
	return Basic{}.ListMoves(node)
}

func (n *Neural) BoardValue(node *Node) float64 {
	features := Features(node.State())

	n.mu.Lock()
	defer n.mu.Unlock()
	return n.network.Predict(features)[0]
}

// TrainingGame is a finished game: its moves from the initial position and
// how it ended.
type TrainingGame struct {
	Moves  []Move
	Result game.Status
}

// Examples replays every game and labels each position with the final
// result: 1 when ZERO won, -1 when ONE won, 0 otherwise.
func Examples(games []TrainingGame) (training.Examples, error) {
	rules := Rules{}
	var examples training.Examples
	for i, g := range games {
		outcome := 0.0
		if g.Result.IsEndGame() && g.Result != game.Draw {
			outcome = g.Result.Winner().ScoreModifier()
		}
		state := rules.InitialState()
		for _, move := range g.Moves {
			legality := rules.IsLegal(move, state)
			if !legality.IsLegal() {
				return nil, fmt.Errorf("game %d turn %d: %s: %w", i, state.Turn(), move, legality.Reason())
			}
			state = rules.ApplyLegalMove(move, state, legality.Effect())
			examples = append(examples, training.Example{
				Input:    Features(state),
				Response: []float64{outcome},
			})
		}
	}
	return examples, nil
}

// TrainNeural fits network to the positions of games.
func TrainNeural(network *deep.Neural, games []TrainingGame, config NetworkConfig) error {
	examples, err := Examples(games)
	if err != nil {
		return err
	}
	if len(examples) == 0 {
		return fmt.Errorf("no positions to train on")
	}
	examples.Shuffle()

	trainer := training.NewTrainer(training.NewSGD(config.LearningRate, 0.5, 0.0, false), 0)
	trainer.Train(network, examples, nil, config.Iterations)
	log.Info().Msgf("Trained value network on %d positions from %d games", len(examples), len(games))
	return nil
}
