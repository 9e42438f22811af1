package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smohring/contao-cearch-pro/internal/adapters/driven/config/file"
	"github.com/smohring/contao-cearch-pro/internal/core/domain"
	"github.com/smohring/contao-cearch-pro/internal/core/services"
)

var (
	searchOr       bool
	searchContains bool
	searchFuzzy    bool
	searchDistance int
	searchLimit    int
	searchOffset   int
	searchParents  []string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed pages",
	Long: `Searches the index with a boolean query. Quoted phrases match in
order, +word requires a word, -word excludes it and * matches within a
word. With --fuzzy, misspelled keywords are matched within an edit
distance and near misses are reported as suggestions.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchOr, "or", false, "match any keyword instead of all")
	searchCmd.Flags().BoolVar(&searchContains, "contains", false, "match keywords anywhere within words")
	searchCmd.Flags().BoolVar(&searchFuzzy, "fuzzy", false, "match keywords approximately")
	searchCmd.Flags().IntVar(&searchDistance, "distance", 0, "maximum edit distance for --fuzzy")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().StringSliceVar(&searchParents, "parent", nil, "restrict to a parent scope, repeatable")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchSvc == nil {
		return errors.New("search service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	limit := searchLimit
	if limit == 0 && configStore != nil {
		limit = configStore.GetInt(file.KeyDefaultLimit)
	}

	opts := domain.SearchOptions{
		Or:        searchOr,
		Contains:  searchContains,
		ParentIDs: searchParents,
		Limit:     limit,
		Offset:    searchOffset,
	}

	if searchFuzzy {
		return runSearchFuzzy(cmd, ctx, args[0], opts)
	}

	results, err := searchSvc.Search(ctx, args[0], opts)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			return errors.New("the query contains no searchable keywords")
		}
		return err
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}
	outputMatches(cmd, results)
	return nil
}

func runSearchFuzzy(cmd *cobra.Command, ctx context.Context, query string, opts domain.SearchOptions) error {
	distance := searchDistance
	if distance == 0 && configStore != nil {
		distance = configStore.GetInt(file.KeyMaxDistance)
	}
	if distance == 0 {
		distance = services.DefaultMaxDistance
	}

	result, err := searchSvc.SearchFuzzy(ctx, query, opts, distance)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			return errors.New("the query contains no searchable keywords")
		}
		return err
	}

	if searchJSON {
		return outputJSON(cmd, result)
	}

	outputMatches(cmd, result.Exact)
	if len(result.More) == 0 {
		return nil
	}

	cmd.Println("Did you mean:")
	for _, d := range result.Distances() {
		words := make([]string, 0, len(result.More[d]))
		for _, m := range result.More[d] {
			words = append(words, m.Word)
		}
		sort.Strings(words)
		cmd.Printf("  [%d] %s\n", d, strings.Join(words, ", "))
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputMatches(cmd *cobra.Command, results []domain.DocumentMatch) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		doc := results[i].Document
		title := doc.Title
		if title == "" {
			title = doc.URL
		}

		cmd.Printf("  [%d] %s (%d)\n", i+1, title, results[i].Relevance)
		cmd.Printf("      %s\n", doc.URL)
		if doc.Description != "" {
			cmd.Printf("      %s\n", doc.Description)
		}
		if len(results[i].Words) > 0 {
			cmd.Printf("      Matched: %s\n", strings.Join(results[i].Words, ", "))
		}
		cmd.Println()
	}
}
