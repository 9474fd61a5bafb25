package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pastforward-labs/pastforward/internal/generate"
	"github.com/pastforward-labs/pastforward/internal/llm"
	"github.com/pastforward-labs/pastforward/internal/logging"
	"github.com/pastforward-labs/pastforward/internal/post"
)

var (
	genEra        string
	genLocation   string
	genCharacter  string
	genPlatform   string
	genPrompt     string
	genCreativity int
	genImage      bool
	genSave       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a historical social media post",
	Long: `Generate a social media post written from the perspective of someone
living in a historical era.

The post is produced by an LLM when GEMINI_API_KEY or OPENAI_API_KEY is
configured. Without a reachable model the built-in synthetic generator
takes over, so generation always succeeds.

Examples:
  pastforward generate --era "Roman Empire (27 BCE-476 CE)" --location "Rome, Italy" --character Senator --platform twitter
  pastforward generate --era "Renaissance (1400-1600)" --location "Florence, Italy" --character "Poet/Writer" --platform reddit --creativity 80
  pastforward generate --era "Ancient Egypt (3100-30 BCE)" --location "Thebes, Egypt" --character Priest --platform instagram --image --save`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&genEra, "era", "", "Historical era, optionally with a date range in parentheses")
	generateCmd.Flags().StringVar(&genLocation, "location", "", "Place the author lives in")
	generateCmd.Flags().StringVar(&genCharacter, "character", "", "Author archetype (e.g. Senator, Merchant, Poet/Writer)")
	generateCmd.Flags().StringVar(&genPlatform, "platform", "twitter", "Target platform: instagram, twitter or reddit")
	generateCmd.Flags().StringVar(&genPrompt, "prompt", "", "Additional context folded into the model prompt")
	generateCmd.Flags().IntVar(&genCreativity, "creativity", 50, "Creativity from 0 (strict accuracy) to 100 (creative liberty)")
	generateCmd.Flags().BoolVar(&genImage, "image", false, "Request an image slot (instagram only)")
	generateCmd.Flags().BoolVar(&genSave, "save", false, "Persist the generated post locally")

	_ = generateCmd.MarkFlagRequired("era")
	_ = generateCmd.MarkFlagRequired("location")
	_ = generateCmd.MarkFlagRequired("character")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := logging.NewCLILogger()

	platform, err := post.ParsePlatform(genPlatform)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	params := post.GenerationParams{
		Era:           genEra,
		Location:      genLocation,
		CharacterType: genCharacter,
		Platform:      platform,
		CustomPrompt:  genPrompt,
		GenerateImage: genImage,
		Creativity:    genCreativity,
	}

	invoker, err := llm.NewInvokerFromEnv(ctx, logger)
	if errors.Is(err, llm.ErrNoProvider) {
		return fmt.Errorf("%s no LLM provider configured: set GEMINI_API_KEY or OPENAI_API_KEY", errorStyle.Render("Error:"))
	}
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	pipeline, err := generate.NewPipeline(invoker, logger)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	result, err := pipeline.Generate(ctx, params)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	fmt.Println()
	fmt.Println(renderPost(result))
	fmt.Println()

	if genSave {
		st, err := openStore()
		if err != nil {
			return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
		}
		defer st.Close()

		saved, err := st.Save(ctx, params, result)
		if err != nil {
			return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
		}
		fmt.Println(metaStyle.Render("Saved as " + saved.ID))
	}

	return nil
}
