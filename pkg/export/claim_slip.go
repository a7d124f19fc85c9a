package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ClaimSlip holds the fields printed on a registrar claim stub.
type ClaimSlip struct {
	RequestID   string
	RequestType string
	Status      string
	StudentName string
	StudentID   string
	Program     string
	CreatedAt   time.Time
	Appointment string
	AdminNote   string
}

// ClaimSlipExporter renders claim stubs handed to students on pickup.
type ClaimSlipExporter struct{}

// NewClaimSlipExporter constructs a claim-slip exporter.
func NewClaimSlipExporter() *ClaimSlipExporter {
	return &ClaimSlipExporter{}
}

// Render creates a single-page PDF stub for the given request.
func (e *ClaimSlipExporter) Render(slip ClaimSlip) ([]byte, error) {
	if slip.RequestID == "" {
		return nil, fmt.Errorf("claim slip requires a request id")
	}
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 14, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "REGISTRAR CLAIM SLIP", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Reference: %s", strings.ToUpper(shortID(slip.RequestID))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	rows := [][2]string{
		{"Student", slip.StudentName},
		{"Student ID", slip.StudentID},
		{"Program", slip.Program},
		{"Request Type", slip.RequestType},
		{"Status", slip.Status},
		{"Submitted", slip.CreatedAt.Format("January 2, 2006")},
	}
	if slip.Appointment != "" {
		rows = append(rows, [2]string{"Appointment", slip.Appointment})
	}
	if slip.AdminNote != "" {
		rows = append(rows, [2]string{"Remarks", slip.AdminNote})
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(35, 7, row[0], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 7, row[1], "1", 1, "", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(0, 4, "Present this slip together with a valid school ID when claiming your document at the registrar window.", "", "L", false)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render claim slip: %w", err)
	}
	return buf.Bytes(), nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
