package jobs

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"modamart/internal/repositories"
	"modamart/internal/services"
)

// HistoryReportExporter builds a CSV of one day's status-change audit rows
// and ships it to object storage. It runs nightly against the previous day.
type HistoryReportExporter struct {
	historyRepo repositories.HistoryRepository
	storage     services.StorageService
	bucketName  string
}

type ExportResult struct {
	ObjectName      string
	RecordsExported int
}

func NewHistoryReportExporter(historyRepo repositories.HistoryRepository, storage services.StorageService, bucketName string) *HistoryReportExporter {
	return &HistoryReportExporter{
		historyRepo: historyRepo,
		storage:     storage,
		bucketName:  bucketName,
	}
}

// ExportDay exports every history row recorded on the given calendar day.
func (e *HistoryReportExporter) ExportDay(ctx context.Context, day time.Time) (*ExportResult, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	rows, err := e.historyRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list history for %s: %w", start.Format("2006-01-02"), err)
	}
	if len(rows) == 0 {
		log.Printf("history export: no rows for %s, skipping upload", start.Format("2006-01-02"))
		return &ExportResult{RecordsExported: 0}, nil
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	header := []string{"id", "order_detail_id", "order_status_type_id", "address_id", "modify_account_id", "price", "updated_at"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.ID.String(),
			strconv.FormatInt(row.OrderDetailID, 10),
			strconv.FormatInt(row.OrderStatusTypeID, 10),
			strconv.FormatInt(row.AddressID, 10),
			strconv.FormatInt(row.ModifyAccountID, 10),
			strconv.FormatInt(row.Price, 10),
			row.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	objectName := fmt.Sprintf("history/%s.csv", start.Format("2006-01-02"))
	content := buf.String()

	if err := e.storage.EnsureBucketExists(ctx, e.bucketName); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket %s: %w", e.bucketName, err)
	}
	if err := e.storage.UploadReport(ctx, e.bucketName, objectName, strings.NewReader(content), int64(len(content))); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	log.Printf("history export: uploaded %s with %d records", objectName, len(rows))
	return &ExportResult{ObjectName: objectName, RecordsExported: len(rows)}, nil
}

// ExportPreviousDay is the scheduler entry point.
func (e *HistoryReportExporter) ExportPreviousDay(ctx context.Context) error {
	_, err := e.ExportDay(ctx, time.Now().AddDate(0, 0, -1))
	return err
}
