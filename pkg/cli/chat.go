package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/makazi-lab/makazi/pkg/cli/config"
	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/repository/memory"
	"github.com/makazi-lab/makazi/pkg/usecase"
	"github.com/makazi-lab/makazi/pkg/utils/logging"
	"github.com/makazi-lab/makazi/pkg/utils/safe"
)

func cmdChat() *cli.Command {
	var geminiCfg config.Gemini
	var knowledgeCfg config.Knowledge
	var catalogCfg config.Catalog
	var scoringCfg config.Scoring
	var agentCfg config.Agent

	var flags []cli.Flag
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, knowledgeCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, scoringCfg.Flags()...)
	flags = append(flags, agentCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Chat with the property assistant in the terminal",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			repo := memory.New()
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if llmClient == nil {
				logger.Warn("Gemini project not configured, answers will be degraded and extraction falls back to keywords")
			}

			store, err := knowledgeCfg.Configure(llmClient)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize knowledge store")
			}

			scorer, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize scorer")
			}

			ucOpts := append(agentCfg.Options(),
				usecase.WithLLMClient(llmClient),
				usecase.WithScorer(scorer),
			)
			uc := usecase.New(repo, store, catalogCfg.Configure(), ucOpts...)

			title := color.New(color.FgCyan, color.Bold)
			prompt := color.New(color.FgGreen, color.Bold)
			detail := color.New(color.Faint)

			title.Println("makazi property assistant")
			detail.Println("Ask about Nairobi neighborhoods, prices or listings. Type 'exit' to quit.")
			fmt.Println()

			var conversationID model.ConversationID
			scanner := bufio.NewScanner(os.Stdin)
			for {
				prompt.Print("you> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				resp := uc.RespondAndRecommend(ctx, line, conversationID)
				conversationID = resp.ConversationID

				safe.Write(ctx, os.Stdout, []byte(resp.Response+"\n"))
				for _, rec := range resp.Recommendations {
					detail.Printf("  • %s, %s (%s, match %.0f%%)\n",
						rec.Title, rec.Location, rec.FormattedPrice, rec.MatchScore*100)
				}
				if len(resp.Sources) > 0 {
					detail.Printf("  sources: %s\n", strings.Join(resp.Sources, ", "))
				}
				fmt.Println()
			}
			if err := scanner.Err(); err != nil {
				return goerr.Wrap(err, "failed to read input")
			}

			if conversationID != "" {
				logger.Info("Chat session ended", "conversation_id", conversationID)
			}
			return nil
		},
	}
}
