package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/makazi-lab/makazi/pkg/cli/config"
	"github.com/makazi-lab/makazi/pkg/utils/logging"
)

func cmdStatus() *cli.Command {
	var geminiCfg config.Gemini
	var knowledgeCfg config.Knowledge
	var catalogCfg config.Catalog

	var flags []cli.Flag
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, knowledgeCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:  "status",
		Usage: "Load the knowledge corpus and property catalog and report their contents",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}

			store, err := knowledgeCfg.Configure(llmClient)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize knowledge store")
			}

			if err := store.Load(ctx); err != nil {
				return goerr.Wrap(err, "failed to load knowledge corpus")
			}

			status := store.Status()
			logger.Info("Knowledge corpus loaded",
				"state", status.State.String(),
				"documents", status.TotalDocuments,
				"chunks", status.TotalChunks,
			)
			for _, doc := range status.Documents {
				logger.Info("Corpus document",
					"file", doc.FileName,
					"type", doc.FileType,
					"size", doc.Size,
					"chunks", doc.Chunks,
				)
			}

			// The catalog is optional at runtime, so a missing data file is
			// reported rather than failing the command.
			cat := catalogCfg.Configure()
			listings, err := cat.Listings(ctx)
			if err != nil {
				logger.Warn("Property catalog unavailable", "error", err.Error())
				return nil
			}
			logger.Info("Property catalog loaded", "listings", len(listings))

			return nil
		},
	}
}
