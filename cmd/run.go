package main

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/estimate-intake/internal/model"
)

var runCmd = &cobra.Command{
	Use:   "run <submission.json>",
	Short: "Process a single submission from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sub, err := loadSubmission(args[0])
		if err != nil {
			return err
		}

		p := initPipeline(ctx)
		result := p.Process(ctx, sub)

		zap.L().Info("run complete",
			zap.String("submission_id", sub.ID),
			zap.Float64("estimated_total", result.Pricing.EstimatedTotal),
			zap.String("doc_url", result.Doc.URL),
			zap.String("contact_id", result.ContactID),
			zap.Bool("estimate_created", result.EstimateCreated),
			zap.Strings("flags", result.Flags),
		)

		return nil
	},
}

// loadSubmission reads a submission from a JSON file and applies the same
// intake gate as the HTTP endpoint.
func loadSubmission(path string) (model.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Submission{}, eris.Wrap(err, "read submission file")
	}

	var sub model.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return model.Submission{}, eris.Wrap(err, "parse submission file")
	}

	if sub.PropertyAddress == "" || sub.PropertyType == "" {
		return model.Submission{}, eris.New("submission missing property_address or property_type")
	}

	sub.ID = uuid.NewString()
	return sub, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
