package cmd

import (
	"github.com/etnz/fifo/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the fifo command line for shell completion.
func Completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	topics = append(topics, docs.Readme, "*")

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"session": {},
			"menu":    {},
			"run": {
				Flags: map[string]complete.Predictor{"strict": predict.Nothing},
				Args:  predict.Files("*"),
			},
			"topic":    {Args: predict.Set(topics)},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.yaml"),
			"currency": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD"},
			"style":    predict.Set(Styles),
			"v":        predict.Nothing,
		},
	}
}
