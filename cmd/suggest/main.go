// Command suggest asks for recipe suggestions from the terminal.
//
//	suggest rice dal "red onion"
//	suggest -i "rice, dal, red onion"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/logging"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("suggest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	list := fs.String("i", "", "comma-separated ingredients")
	asJSON := fs.Bool("json", false, "print recipes as JSON")
	verbose := fs.Bool("v", false, "log to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	logger := logging.Nop()
	if *verbose {
		logger = logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr}, "pantry-chef-cli")
	}

	ingredients := service.ParseIngredientList(*list)
	for _, arg := range fs.Args() {
		ingredients.Add(arg)
	}

	llm := service.NewLLMClient(service.LLMConfig{
		APIKey:  cfg.AIGatewayAPIKey,
		APIURL:  cfg.AIGatewayURL,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	})
	svc := service.NewSuggestionService(llm,
		service.WithLogger(logger),
		service.WithStrictValidation(cfg.StrictRecipes),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return suggest(ctx, svc, ingredients, *asJSON, stdout, stderr)
}

func suggest(ctx context.Context, svc service.RecipeSuggester, ingredients *service.IngredientList, asJSON bool, stdout, stderr io.Writer) int {
	recipes, err := svc.Suggest(ctx, ingredients.Join())
	if err != nil {
		var se *service.SuggestionError
		if errors.As(err, &se) {
			fmt.Fprintln(stderr, se.Message)
		} else {
			fmt.Fprintln(stderr, service.MsgUnexpected)
		}
		return 1
	}

	if asJSON {
		if err := writeJSON(stdout, recipes); err != nil {
			fmt.Fprintf(stderr, "failed to write output: %v\n", err)
			return 1
		}
		return 0
	}

	printRecipes(stdout, recipes)
	return 0
}

func printRecipes(w io.Writer, recipes []types.RecipeSuggestion) {
	for i, recipe := range recipes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n%s\n", recipe.Name, recipe.Description)
		for _, step := range recipe.Instructions {
			fmt.Fprintf(w, "  %s\n", step)
		}
		if len(recipe.OptionalIngredients) > 0 {
			fmt.Fprintf(w, "Optional: %s\n", strings.Join(recipe.OptionalIngredients, ", "))
		}
	}
}

func writeJSON(w io.Writer, recipes []types.RecipeSuggestion) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(types.SuggestRecipesResponse{Recipes: recipes})
}
