// Package publish uploads rendered HTML snapshots to S3-compatible storage.
//
// A Publisher wraps any client with a PutObject method, so tests and
// alternative stores can stand in for *s3.Client:
//
//	client := publish.NewClient(cfg.Publish)
//	p := publish.New(client, cfg.Publish.Bucket,
//		publish.WithPrefix(cfg.Publish.Prefix),
//		publish.WithGzip(cfg.Publish.Gzip),
//	)
//	key, err := p.Publish(ctx, "index.html", html)
package publish
