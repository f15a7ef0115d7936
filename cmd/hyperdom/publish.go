package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hyperdom/internal/errors"
	"github.com/vango-dev/hyperdom/internal/publish"
)

func publishCmd(a *app) *cobra.Command {
	var (
		bucket string
		key    string
		gzip   bool
	)

	cmd := &cobra.Command{
		Use:   "publish [script.js]",
		Short: "Render a script and upload the HTML to S3",
		Long: `Render a script and upload the result as a static snapshot.

The object key defaults to the script name with an .html extension,
under publish.prefix from the config. Credentials are read from
AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.

Examples:
  hyperdom publish app.js --bucket=my-site
  hyperdom publish app.js --key=index.html --gzip`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.cfg.Publish
			if bucket != "" {
				settings.Bucket = bucket
			}
			if cmd.Flags().Changed("gzip") {
				settings.Gzip = gzip
			}

			path := a.scriptPath(args)
			if key == "" {
				key = snapshotName(path)
			}

			if settings.Bucket == "" {
				return errors.New("E030")
			}

			html, err := renderFile(cmd.Context(), a, path, 0)
			if err != nil {
				return err
			}
			p := publish.New(
				publish.NewClient(settings),
				settings.Bucket,
				publish.WithPrefix(settings.Prefix),
				publish.WithGzip(settings.Gzip),
				publish.WithLogger(a.logger),
			)
			objectKey, err := p.Publish(cmd.Context(), key, html)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Published s3://%s/%s", settings.Bucket, objectKey)
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Destination bucket (default from config)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Object key relative to the prefix")
	cmd.Flags().BoolVar(&gzip, "gzip", false, "Upload gzip-encoded")

	return cmd
}

// snapshotName turns a script path into an object name: app.js becomes
// app.html.
func snapshotName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}
