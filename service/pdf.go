package service

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/akashkendre1298/vastureports/model"
)

const (
	pdfRowHeight    = 8
	pdfHeaderHeight = 9
	pdfFontSize     = 8
)

var (
	pdfHeaderFill = &props.Color{Red: 41, Green: 128, Blue: 185}
	pdfHeaderText = &props.Color{Red: 255, Green: 255, Blue: 255}
	pdfStripeFill = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// EncodePDF renders table as a single paginated table; the header row repeats on every page
func EncodePDF(table model.Table) ([]byte, error) {
	if len(table.Headers) == 0 {
		return nil, fmt.Errorf("table has no columns")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(len(table.Headers)).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithBottomMargin(10).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterHeader(pdfHeaderRow(table.Headers)); err != nil {
		return nil, fmt.Errorf("failed to register table head: %w", err)
	}

	rows := make([]core.Row, 0, len(table.Rows))
	for i, r := range table.Rows {
		rows = append(rows, pdfBodyRow(r, len(table.Headers), i%2 == 1))
	}
	m.AddRows(rows...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}

	return doc.GetBytes(), nil
}

func pdfHeaderRow(headers []string) core.Row {
	cols := make([]core.Col, len(headers))
	for i, h := range headers {
		cols[i] = text.NewCol(1, h, props.Text{
			Size:  pdfFontSize,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: pdfHeaderText,
			Top:   2,
			Left:  1,
		})
	}
	return row.New(pdfHeaderHeight).Add(cols...).WithStyle(&props.Cell{
		BackgroundColor: pdfHeaderFill,
	})
}

func pdfBodyRow(r model.Row, width int, striped bool) core.Row {
	cols := make([]core.Col, width)
	for i := 0; i < width; i++ {
		var value any
		if i < len(r) {
			value = r[i]
		}
		cols[i] = text.NewCol(1, DisplayString(value), props.Text{
			Size:  pdfFontSize,
			Align: align.Left,
			Top:   2,
			Left:  1,
		})
	}

	line := row.New(pdfRowHeight).Add(cols...)
	if striped {
		line = line.WithStyle(&props.Cell{BackgroundColor: pdfStripeFill})
	}
	return line
}
