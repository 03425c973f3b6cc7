package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// BigQueryParams selects a raw word list from a BigQuery table with word_key, scope and obscure
// columns.
type BigQueryParams struct {
	ProjectID      string
	Table          string
	Scope          string
	IncludeObscure bool
	Location       string
}

// BigQueryWords runs the word query and returns every word_key.
func BigQueryWords(ctx context.Context, p BigQueryParams) ([]string, error) {
	if p.ProjectID == "" || p.Table == "" {
		return nil, errors.New("bigquery project and table are required")
	}

	client, err := bigquery.NewClient(ctx, p.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	query := fmt.Sprintf("SELECT word_key FROM `%s` WHERE scope = @scope", p.Table)
	if !p.IncludeObscure {
		query += " AND obscure = FALSE"
	}
	q := client.Query(query)
	q.Parameters = []bigquery.QueryParameter{{Name: "scope", Value: p.Scope}}
	q.Location = p.Location
	if q.Location == "" {
		q.Location = "US"
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		words = append(words, word)
	}
	return words, nil
}

// BigQuery is a raw word list read from a BigQuery table, one word per line.
type BigQuery struct {
	Params BigQueryParams
}

func (b BigQuery) Open(ctx context.Context) (io.ReadCloser, error) {
	words, err := BigQueryWords(ctx, b.Params)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(strings.Join(words, "\n"))), nil
}

func (b BigQuery) String() string {
	return fmt.Sprintf("bigquery://%s/%s?scope=%s", b.Params.ProjectID, b.Params.Table, url.QueryEscape(b.Params.Scope))
}

// parseBigQuery reads bigquery://<project>/<dataset.table>?scope=<scope>&obscure=<bool>&location=<loc>.
func parseBigQuery(u *url.URL) (Source, error) {
	table := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || table == "" {
		return nil, fmt.Errorf("bigquery URI %q must name a project and a table", u.String())
	}
	q := u.Query()
	p := BigQueryParams{
		ProjectID: u.Host,
		Table:     table,
		Scope:     q.Get("scope"),
		Location:  q.Get("location"),
	}
	if v := q.Get("obscure"); v != "" {
		obscure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("bigquery URI %q: invalid obscure flag: %w", u.String(), err)
		}
		p.IncludeObscure = obscure
	}
	return BigQuery{Params: p}, nil
}
