package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	gql "github.com/lukaszraczylo/go-storefront-graphql"
	libpack_logger "github.com/lukaszraczylo/go-storefront-graphql/logging"
	"github.com/lukaszraczylo/go-storefront-graphql/storefront"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

type queryOptions struct {
	variables     string
	customerToken string
	channelID     string
	path          string
}

func newQueryCmd(a *app) *cobra.Command {
	opts := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "query <file|->",
		Short: "Run a GraphQL document and print the response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.variables, "variables", "", "variables as a JSON object")
	cmd.Flags().StringVar(&opts.customerToken, "customer-token", "", "customer access token")
	cmd.Flags().StringVar(&opts.channelID, "channel", "", "channel id for this call only")
	cmd.Flags().StringVar(&opts.path, "path", "", "gjson path to print instead of the whole response")
	return cmd
}

func (a *app) runQuery(cmd *cobra.Command, source string, opts *queryOptions) error {
	document, err := a.readDocument(source)
	if err != nil {
		return err
	}
	variables, err := parseVariables(opts.variables)
	if err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return err
	}

	req := &storefront.Request{
		Document:            document,
		CustomerAccessToken: opts.customerToken,
		ChannelID:           opts.channelID,
	}
	if variables != nil {
		req.Variables = variables
	}

	var res *gql.Result
	err = a.withRetry(cmd.Context(), func() error {
		var err error
		res, err = client.Do(cmd.Context(), req)
		return err
	})
	if err != nil {
		return err
	}

	if errs := gjson.GetBytes(res.Body, "errors"); errs.Exists() {
		for _, e := range errs.Array() {
			a.logger.Warning(&libpack_logger.LogMessage{
				Message: "GraphQL error",
				Pairs: map[string]interface{}{
					"message": e.Get("message").String(),
					"path":    e.Get("path").Raw,
				},
			})
		}
	}
	return writeResult(a.out, res.Body, opts.path)
}

func (a *app) readDocument(source string) (string, error) {
	var (
		raw []byte
		err error
	)
	if source == "-" {
		raw, err = io.ReadAll(a.in)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return "", fmt.Errorf("can't read document: %w", err)
	}
	document := strings.TrimSpace(string(raw))
	if document == "" {
		return "", fmt.Errorf("%w: document is empty", gql.ErrInvalidDocument)
	}
	return document, nil
}

func parseVariables(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var variables map[string]any
	if err := json.Unmarshal([]byte(raw), &variables); err != nil {
		return nil, fmt.Errorf("variables must be a JSON object: %w", err)
	}
	return variables, nil
}

// writeResult prints body indented, or only the value at path when set.
// Strings at path are printed unquoted.
func writeResult(w io.Writer, body []byte, path string) error {
	if path != "" {
		value := gjson.GetBytes(body, path)
		if !value.Exists() {
			return fmt.Errorf("path %q not found in response", path)
		}
		if value.Type == gjson.String {
			_, err := fmt.Fprintln(w, value.String())
			return err
		}
		body = []byte(value.Raw)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return fmt.Errorf("can't format response: %w", err)
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}
