package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"promohub/internal/catalog"
	"promohub/internal/source"
	"promohub/pkg/models"
)

func main() {
	var (
		file = flag.String("file", "data/promocoes_site.json", "promotions JSON file")
		url  = flag.String("url", "", "promotions JSON URL (overrides -file)")
		out  = flag.String("out", "data/promocoes_ativas.csv", "output CSV path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var src source.Source
	if *url != "" {
		src = source.NewHTTPSource(*url)
	} else {
		src = source.NewFileSource(*file)
	}

	raw, err := src.FetchAll(ctx)
	if err != nil {
		log.Fatalf("fetch promotions failed: %v", err)
	}

	snap := catalog.BuildSnapshot(raw, time.Now())
	if err := exportActive(snap.Active, *out); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	log.Printf("exported %d active promotions (of %d records) to %s",
		len(snap.Active), snap.RawCount, *out)
}

func exportActive(active []models.NormalizedPromotion, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"codigo", "nome", "categoria", "subcategoria",
		"preco_normal", "preco_promo", "desconto_percentual",
		"estoque_total", "duracao_estoque", "data_fim", "dias_restantes", "selo",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range active {
		endDate := ""
		if p.EndDate != nil {
			endDate = p.EndDate.Format("2006-01-02")
		}
		days := ""
		if p.DaysRemaining != nil {
			days = strconv.Itoa(*p.DaysRemaining)
		}

		row := []string{
			strconv.Itoa(p.Code),
			p.Name,
			p.Category,
			p.Subcategory,
			p.NormalPrice.String(),
			p.PromoPrice.String(),
			p.DiscountPercent.String(),
			strconv.Itoa(p.TotalStock),
			strconv.FormatBool(p.UntilStockOut),
			endDate,
			days,
			catalog.Derive(p).Badge,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
