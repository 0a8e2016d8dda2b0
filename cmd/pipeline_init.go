package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/estimate-intake/internal/crm"
	"github.com/sells-group/estimate-intake/internal/docgen"
	"github.com/sells-group/estimate-intake/internal/enrich"
	"github.com/sells-group/estimate-intake/internal/normalize"
	"github.com/sells-group/estimate-intake/internal/pipeline"
	"github.com/sells-group/estimate-intake/pkg/anthropic"
	"github.com/sells-group/estimate-intake/pkg/gdocs"
	"github.com/sells-group/estimate-intake/pkg/leadconnector"
	"github.com/sells-group/estimate-intake/pkg/lusha"
	"github.com/sells-group/estimate-intake/pkg/rentcast"
)

// initPipeline wires the stage components from configuration. A missing
// credential leaves that client nil, which the owning component treats
// as its documented degraded mode; nothing here fails the process.
func initPipeline(ctx context.Context) *pipeline.Pipeline {
	var aiClient anthropic.Client
	if cfg.Anthropic.Key != "" {
		aiClient = anthropic.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Warn("anthropic key missing, address normalization degraded")
	}
	normalizer := normalize.New(aiClient, cfg.Anthropic.Model)

	var rcClient rentcast.Client
	if cfg.RentCast.Endpoint != "" && cfg.RentCast.Key != "" {
		rcClient = rentcast.NewClient(cfg.RentCast.Endpoint, cfg.RentCast.Key)
	}
	var luClient lusha.Client
	if cfg.Lusha.Endpoint != "" && cfg.Lusha.Key != "" {
		luClient = lusha.NewClient(cfg.Lusha.Endpoint, cfg.Lusha.Key)
	}
	enricher := enrich.New(rcClient, luClient)

	var docsClient gdocs.Client
	if cfg.Google.ServiceAccountJSON != "" {
		c, err := gdocs.NewClient(ctx, []byte(cfg.Google.ServiceAccountJSON))
		if err != nil {
			zap.L().Warn("google docs client init failed, document generation disabled", zap.Error(err))
		} else {
			docsClient = c
		}
	}
	generator := docgen.New(docsClient, cfg.Google.DocsFolderID)

	var lcClient leadconnector.Client
	if cfg.CRM.Key != "" {
		opts := []leadconnector.Option{}
		if cfg.CRM.BaseURL != "" {
			opts = append(opts, leadconnector.WithBaseURL(cfg.CRM.BaseURL))
		}
		lcClient = leadconnector.NewClient(cfg.CRM.Key, opts...)
	}
	connector := crm.New(lcClient, cfg.CRM.LocationID, cfg.CRM.UserID)

	return pipeline.New(normalizer, enricher, generator, connector)
}
