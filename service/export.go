package service

import (
	"fmt"

	"github.com/akashkendre1298/vastureports/model"
)

// Encoder turns a table into file bytes
type Encoder func(model.Table) ([]byte, error)

var encoders = map[model.OutputFormat]Encoder{
	model.FormatPDF:  EncodePDF,
	model.FormatXLSX: EncodeXLSX,
}

// Export encodes table in format and names the result <kind>_report.<ext>
func Export(format model.OutputFormat, table model.Table) (*model.Artifact, error) {
	encode, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	data, err := encode(table)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s report: %w", format, err)
	}

	return &model.Artifact{
		Filename:    model.ReportFilename(table.Kind, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}
