// Package main builds a digest of every merchant's current deal and writes it
// as CSV or XML, optionally uploading the file over SFTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bargain-buddy/internal/catalog"
	"bargain-buddy/internal/concurrency"
	"bargain-buddy/internal/config"
	"bargain-buddy/internal/domain"
	"bargain-buddy/internal/export"
	"bargain-buddy/internal/providers"
	"bargain-buddy/internal/sftpclient"
	"bargain-buddy/internal/skill"
)

const (
	formatCSV = "csv"
	formatXML = "xml"
)

func main() {
	var (
		outPath    = flag.String("out", "DEALS_DIGEST.csv", "output path; .csv or .xml picks the format")
		workers    = flag.Int("workers", concurrency.DefaultOptions().MaxWorkers, "merchants fetched at the same time")
		uploadSFTP = flag.Bool("sftp", false, "upload the generated digest via SFTP")
	)
	flag.Parse()

	format, err := formatFor(*outPath)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()

	rootCtx, rootCancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer rootCancel()

	if dir := filepath.Dir(*outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal(err)
		}
	}

	merchants := catalog.All()
	rows := collect(rootCtx, providers.FromConfig(cfg), merchants, *workers)

	switch format {
	case formatXML:
		err = export.WriteDealXML(*outPath, rows, time.Now())
	default:
		err = export.WriteDealCSVFile(*outPath, rows)
	}
	if err != nil {
		log.Fatal(err)
	}

	counts := countByStatus(rows)
	log.Printf(
		"wrote %d merchants to %s (active=%d, sold_out=%d, no_offer=%d, unreachable=%d, unexpected=%d)",
		len(rows),
		*outPath,
		counts[export.StatusActive],
		counts[export.StatusSoldOut],
		counts[export.StatusNoOffer],
		counts[export.StatusUnreachable],
		counts[export.StatusUnexpected],
	)

	if *uploadSFTP {
		remoteName := filepath.Base(*outPath)

		upCfg := sftpclient.Config{
			Host:                  cfg.SFTPHost,
			Port:                  cfg.SFTPPort,
			User:                  cfg.SFTPUser,
			Pass:                  cfg.SFTPPass,
			RemoteDir:             cfg.SFTPDir,
			InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
			KnownHostsPath:        cfg.SFTPKnownHosts,
		}

		upCtx, upCancel := context.WithTimeout(rootCtx, 2*time.Minute)
		defer upCancel()

		if err := sftpclient.UploadFile(upCtx, upCfg, *outPath, remoteName); err != nil {
			log.Fatal(err)
		}
		log.Printf("uploaded to sftp://%s:%d%s/%s", upCfg.Host, upCfg.Port, upCfg.RemoteDir, remoteName)
	}
}

// collect looks up every merchant in parallel. Lookup failures become rows
// with a failure status; the digest always has one row per merchant, in
// catalog order.
func collect(ctx context.Context, deals skill.DealSource, merchants []domain.Merchant, workers int) []export.DigestRow {
	rows, _ := concurrency.ProcessParallel(ctx, merchants, concurrency.ParallelOptions{MaxWorkers: workers},
		func(ctx context.Context, _ int, m domain.Merchant) (export.DigestRow, error) {
			d, err := deals.CurrentDeal(ctx, m)
			if err != nil {
				return export.NewDigestRow(m, nil, err), nil
			}
			return export.NewDigestRow(m, &d, nil), nil
		})

	// items never started because ctx ended
	for i, r := range rows {
		if r.MerchantID == "" {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("merchant %s was not looked up", merchants[i].ID)
			}
			rows[i] = export.NewDigestRow(merchants[i], nil, err)
		}
	}
	return rows
}

func formatFor(outPath string) (string, error) {
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".csv":
		return formatCSV, nil
	case ".xml":
		return formatXML, nil
	default:
		return "", fmt.Errorf("unsupported output extension %q (use .csv or .xml)", filepath.Ext(outPath))
	}
}

func countByStatus(rows []export.DigestRow) map[string]int {
	out := map[string]int{}
	for _, r := range rows {
		out[r.Status]++
	}
	return out
}
