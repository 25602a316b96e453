package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/joeshaw/envdecode"

	"whats4dinner"
	"whats4dinner/match"
	"whats4dinner/pantry"
	"whats4dinner/spoonacular"
	"whats4dinner/storage"
)

const usage = `usage: pantry <command> [args]

commands:
  list                          show the pantry
  search <query>                search the ingredient catalog
  add <query> <id>              add ingredient <id> from the results of <query>
  edit <id> <quantity> <unit>   change an item's quantity and unit
  remove <id>                   remove an item
  clear                         empty the pantry
  export <file.xlsx>            write the pantry as a spreadsheet
  recipe [-dump] <id>           show a recipe and which ingredients you have`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	os.Exit(run(os.Args[1], os.Args[2:]))
}

func run(cmd string, args []string) int {
	ctx := context.Background()

	if err := whats4dinner.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %s", err)
	}

	var storageConfig whats4dinner.StorageConfig
	if err := envdecode.Decode(&storageConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	kv, closeStore, err := storage.Open(ctx, storageConfig)
	if err != nil {
		log.Fatalf("Failed to open storage: %s", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("SETUP: Failed to close storage", "error", err)
		}
	}()

	app := &app{
		manager: pantry.NewManager(pantry.NewStore(kv)),
		command: cmd,
	}
	defer func() {
		if err := app.close(); err != nil {
			slog.Error("Failed to flush call log", "error", err)
		}
	}()

	if err := app.run(ctx, cmd, args); err != nil {
		slog.Error("RESULT: Command failed", "command", cmd, "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

type app struct {
	manager *pantry.Manager
	command string
	client  *spoonacular.Client
	cleanup func() error
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		return a.list(ctx)
	case "search":
		if len(args) != 1 {
			return errors.New("usage: search <query>")
		}
		return a.search(ctx, args[0])
	case "add":
		if len(args) != 2 {
			return errors.New("usage: add <query> <id>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[1])
		}
		return a.add(ctx, args[0], id)
	case "edit":
		if len(args) != 3 {
			return errors.New("usage: edit <id> <quantity> <unit>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		unit, err := pantry.ParseUnit(args[2])
		if err != nil {
			return fmt.Errorf("%w (want one of %v)", err, pantry.Units)
		}
		it, err := a.manager.Update(ctx, id, args[1], unit)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s %s\n", it.Name, it.Quantity, it.Unit)
		return nil
	case "remove":
		if len(args) != 1 {
			return errors.New("usage: remove <id>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		removed, err := a.manager.Remove(ctx, id)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("%d is not in the pantry\n", id)
		}
		return nil
	case "clear":
		return a.manager.Clear(ctx)
	case "export":
		if len(args) != 1 {
			return errors.New("usage: export <file.xlsx>")
		}
		return a.export(ctx, args[0])
	case "recipe":
		return a.recipe(ctx, args)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

func (a *app) list(ctx context.Context) error {
	items := a.manager.List(ctx)
	if len(items) == 0 {
		fmt.Println("Your pantry is empty.")
		return nil
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tADDED")
	for _, it := range items {
		added := ""
		if t := it.Added(); !t.IsZero() {
			added = t.Local().Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\n", it.ID, it.Name, it.Quantity, it.Unit, added)
	}
	return tw.Flush()
}

func (a *app) search(ctx context.Context, query string) error {
	client, err := a.recipeClient()
	if err != nil {
		return err
	}
	found, err := client.SearchIngredients(ctx, query)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, ing := range found {
		fmt.Fprintf(tw, "%d\t%s\n", ing.ID, ing.Name)
	}
	return tw.Flush()
}

func (a *app) add(ctx context.Context, query string, id int) error {
	client, err := a.recipeClient()
	if err != nil {
		return err
	}
	found, err := client.SearchIngredients(ctx, query)
	if err != nil {
		return err
	}
	for _, ing := range found {
		if ing.ID != id {
			continue
		}
		it, err := a.manager.Add(ctx, ing.ID, ing.Name, ing.Image)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%d)\n", it.Name, it.ID)
		return nil
	}
	return fmt.Errorf("ingredient %d not found in results for %q", id, query)
}

func (a *app) export(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.manager.ExportXLSX(ctx, f); err != nil {
		f.Close() // nolint: errcheck
		return err
	}
	return f.Close()
}

func (a *app) recipe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recipe", flag.ContinueOnError)
	dump := fs.Bool("dump", false, "dump the raw recipe detail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: recipe [-dump] <id>")
	}
	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid recipe id %q", fs.Arg(0))
	}

	client, err := a.recipeClient()
	if err != nil {
		return err
	}
	detail, err := client.RecipeDetail(ctx, id)
	if err != nil {
		return err
	}
	if *dump {
		whats4dinner.Dump(os.Stdout, detail)
		return nil
	}

	rec := detail.Recipe
	res := match.Classify(rec.IngredientNames(), a.manager.Names(ctx))

	fmt.Printf("%s\n%d minutes, %d servings, %d calories\n\n", rec.Title, rec.ReadyInMinutes, rec.Servings, detail.Nutrition.Calories)
	for i, ing := range rec.ExtendedIngredients {
		mark := "missing"
		if res.Ingredients[i].Available {
			mark = "have"
		}
		fmt.Printf("  [%-7s] %s\n", mark, ing.Original)
	}
	fmt.Printf("\n%d available, %d missing\n", res.Have, res.Missing)
	return nil
}

// recipeClient builds the API client on first use so pantry-only commands run
// without an api key.
func (a *app) recipeClient() (*spoonacular.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	var apiConfig whats4dinner.SpoonacularConfig
	if err := envdecode.Decode(&apiConfig); err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}
	var cliConfig whats4dinner.CLIConfig
	if err := envdecode.Decode(&cliConfig); err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}

	logger, cleanup, err := newCallLogger(cliConfig.CallLogDir, a.command)
	if err != nil {
		return nil, err
	}
	a.cleanup = cleanup

	client, err := spoonacular.NewClient(spoonacular.ClientOpts{
		BaseURL:    apiConfig.BaseURL,
		APIKey:     apiConfig.APIKey,
		HTTPClient: &http.Client{Timeout: apiConfig.Timeout},
		CallLogger: logger,
	})
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}

func newCallLogger(dir, command string) (whats4dinner.CallLogger, func() error, error) {
	if dir == "" {
		return whats4dinner.NewNoOpCallLogger(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create call log dir: %w", err)
	}

	logFilePath := whats4dinner.NewCallLogFilePath(dir, "pantry "+command)
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := whats4dinner.NewFileCallLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}
