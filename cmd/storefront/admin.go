package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/lukaszraczylo/go-storefront-graphql/utils/concurrency"
	"github.com/spf13/cobra"
)

func newShippingZonesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shipping-zones",
		Short: "List the store's shipping zones from the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			var zones any
			err = a.withRetry(cmd.Context(), func() error {
				var err error
				zones, err = client.FetchShippingZones(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			body, err := json.MarshalIndent(zones, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(body))
			return err
		},
	}
}

func newSitemapCmd(a *app) *cobra.Command {
	var (
		channels    []string
		parallelism int
	)
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Fetch the XML sitemap index for one or more channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			if len(channels) == 0 {
				channels = []string{""}
			}

			results := make([]string, len(channels))
			errs := make([]error, len(channels))
			var mu sync.Mutex

			pool := concurrency.NewPool(parallelism)
			for i, channelID := range channels {
				pool.Enqueue(func(params ...any) {
					idx := params[0].(int)
					channel := params[1].(string)
					var xml string
					err := a.withRetry(cmd.Context(), func() error {
						var err error
						xml, err = client.FetchSitemapIndex(cmd.Context(), channel)
						return err
					})
					mu.Lock()
					results[idx], errs[idx] = xml, err
					mu.Unlock()
				}, i, channelID)
			}
			pool.Wait()

			var failed []string
			for i, channelID := range channels {
				label := channelID
				if label == "" {
					label = a.cfg.ChannelID
				}
				if errs[i] != nil {
					failed = append(failed, fmt.Sprintf("channel %s: %v", label, errs[i]))
					continue
				}
				fmt.Fprintf(a.out, "<!-- channel %s -->\n%s\n", label, strings.TrimSpace(results[i]))
			}
			if len(failed) > 0 {
				return fmt.Errorf("sitemap fetch failed for %d channel(s): %s", len(failed), strings.Join(failed, "; "))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&channels, "channel", nil, "channel ids, defaults to the configured channel")
	cmd.Flags().IntVar(&parallelism, "parallel", 4, "concurrent requests")
	return cmd
}
