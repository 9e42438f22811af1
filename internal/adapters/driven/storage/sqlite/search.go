package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/smohring/contao-cearch-pro/internal/core/domain"
)

// SearchDocuments compiles a query plan into a single grouped SQL
// statement and executes it: candidate index entries are matched by the
// term disjunction, grouped per document with aggregated match count and
// summed relevance, filtered by phrase/include/exclude/parent-scope
// conditions, thresholded under AND semantics, and ordered by relevance.
func (s *Store) SearchDocuments(ctx context.Context, plan domain.QueryPlan) ([]domain.DocumentMatch, error) {
	stmt, args := compilePlan(plan)
	if stmt == "" {
		return nil, nil
	}

	rows, err := s.q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("executing search: %w", err)
	}
	defer rows.Close()

	var matches []domain.DocumentMatch //nolint:prealloc // size unknown from query
	for rows.Next() {
		var m domain.DocumentMatch
		var docID, words string
		var wildcards int
		var protected int
		var groups string

		if err := rows.Scan(&docID, &words, &wildcards, &m.Count, &m.Relevance,
			&m.Document.ID, &m.Document.URL, &m.Document.Title, &m.Document.Description,
			&m.Document.Keywords, &m.Document.ImageURL, &protected, &groups,
			&m.Document.FileSize, &m.Document.ParentID, &m.Document.Language,
			&m.Document.Checksum, &m.Document.Text, &m.Document.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning search hit: %w", err)
		}

		m.Document.Protected = protected != 0
		if groups != "" {
			m.Document.Groups = strings.Split(groups, ",")
		}
		if words != "" {
			m.Words = strings.Split(words, ",")
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search hits: %w", err)
	}
	return matches, nil
}

// compilePlan renders the plan as SQL. An empty statement means the plan
// has no positive term and can match nothing.
func compilePlan(plan domain.QueryPlan) (string, []any) {
	var terms []string
	var termArgs []any

	appendEq := func(column string, words []string) {
		for _, w := range words {
			terms = append(terms, column+" = ?")
			termArgs = append(termArgs, w)
		}
	}

	appendEq("e.word", plan.Keywords)
	appendEq("e.word", plan.Included)
	for _, p := range plan.Phrases {
		appendEq("e.word", p.Words)
	}
	for _, w := range plan.Wildcards {
		terms = append(terms, "e.word LIKE ?")
		termArgs = append(termArgs, w)
	}
	appendEq("e.comparable", plan.Comparables)

	if len(terms) == 0 {
		return "", nil
	}

	var b strings.Builder
	var args []any

	// Matched words ride along for highlighting.
	b.WriteString("SELECT e.document_id, GROUP_CONCAT(e.word) AS matches")

	// The wildcard-match count per document feeds the flexible AND
	// threshold; a constant 0 keeps the column list stable otherwise.
	if !plan.Or && plan.WildcardCount > 0 {
		b.WriteString(", (SELECT COUNT(*) FROM index_entries w WHERE (")
		for i, w := range plan.Wildcards {
			if i > 0 {
				b.WriteString(" OR ")
			}
			b.WriteString("w.word LIKE ?")
			args = append(args, w)
		}
		b.WriteString(") AND w.document_id = e.document_id) AS wildcards")
	} else {
		b.WriteString(", 0 AS wildcards")
	}

	b.WriteString(`, COUNT(*) AS cnt, SUM(e.relevance) AS relevance,
		d.id, d.url, d.title, d.description, d.keywords, d.image_url,
		d.protected, d.access_groups, d.file_size, d.parent_id,
		d.language, d.checksum, d.text, d.updated_at`)
	b.WriteString(` FROM index_entries e JOIN documents d ON d.id = e.document_id WHERE (`)
	b.WriteString(strings.Join(terms, " OR "))
	b.WriteString(")")
	args = append(args, termArgs...)

	if len(plan.Phrases) > 0 {
		glue := " AND "
		if plan.Or {
			glue = " OR "
		}
		conds := make([]string, len(plan.Phrases))
		for i, p := range plan.Phrases {
			conds[i] = "e.document_id IN (SELECT id FROM documents WHERE text REGEXP ?)"
			args = append(args, p.Pattern)
		}
		b.WriteString(" AND (" + strings.Join(conds, glue) + ")")
	}

	if len(plan.Included) > 0 {
		b.WriteString(" AND e.document_id IN (SELECT document_id FROM index_entries WHERE ")
		for i, w := range plan.Included {
			if i > 0 {
				b.WriteString(" OR ")
			}
			b.WriteString("word = ?")
			args = append(args, w)
		}
		b.WriteString(")")
	}

	if len(plan.Excluded) > 0 {
		b.WriteString(" AND e.document_id NOT IN (SELECT document_id FROM index_entries WHERE ")
		for i, w := range plan.Excluded {
			if i > 0 {
				b.WriteString(" OR ")
			}
			b.WriteString("word = ?")
			args = append(args, w)
		}
		b.WriteString(")")
	}

	if len(plan.ParentIDs) > 0 {
		b.WriteString(" AND d.parent_id IN (")
		for i, p := range plan.ParentIDs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("?")
			args = append(args, p)
		}
		b.WriteString(")")
	}

	b.WriteString(" GROUP BY e.document_id")

	// AND semantics: every required term must be present. Wildcard
	// matches count flexibly; one wildcard may cover several words.
	if !plan.Or {
		b.WriteString(" HAVING cnt >= ?")
		args = append(args, plan.RequiredCount)
		if plan.WildcardCount > 0 {
			b.WriteString(" + MAX(wildcards, ?)")
			args = append(args, plan.WildcardCount)
		}
	}

	b.WriteString(" ORDER BY relevance DESC")

	if plan.Limit > 0 {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, plan.Limit, plan.Offset)
	}

	return b.String(), args
}
