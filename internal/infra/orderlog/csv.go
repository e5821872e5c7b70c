package orderlog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"app/internal/domain/model"
)

// ログの保存先が作れない・書けない。
var ErrStorageUnavailable = errors.New("order log storage unavailable")

// 列順とヘッダ文字列は外部の集計がそのまま読むので変更不可。
var Header = []string{
	"Order Date", "Order Time", "User Name", "Item Name", "Category",
	"Unit", "Quantity", "Unit Price (AED)", "Item Total (AED)", "Order Total (AED)",
}

const fileName = "all_orders.csv"

// CSVStore は注文ログのCSV実装。
// 書き込みはmuで直列化し、1注文を1回のO_APPEND書き込みにまとめる。
// 途中までの行がファイルに残ることはない。
type CSVStore struct {
	dir string
	mu  sync.Mutex
}

func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

// ログファイルのパス。
func (s *CSVStore) Path() string {
	return filepath.Join(s.dir, fileName)
}

func (s *CSVStore) Append(ctx context.Context, order model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	f, err := os.OpenFile(s.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// 全行をメモリ上で組み立ててから一度だけ書く
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if st.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}
	for _, ln := range order.Lines {
		row := []string{
			order.Date,
			order.Time,
			order.UserName,
			ln.Name,
			ln.Category,
			ln.Unit,
			strconv.FormatInt(ln.Quantity, 10),
			ln.UnitPrice.StringFixed(2),
			ln.LineTotal.StringFixed(2),
			order.Total.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *CSVStore) ReadAll(ctx context.Context) ([]model.OrderLogRecord, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	f, err := os.Open(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		// まだ注文が無いだけなのでエラーにしない
		return []model.OrderLogRecord{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// 先頭はヘッダ行
	if _, err := r.Read(); err == io.EOF {
		return []model.OrderLogRecord{}, 0, nil
	} else if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	records := []model.OrderLogRecord{}
	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 壊れた行は読み飛ばして件数だけ返す
			skipped++
			continue
		}
		if len(row) < len(Header) || strings.TrimSpace(row[3]) == "" {
			// 列が足りない行とItem Nameが空の行も同様に読み飛ばす
			skipped++
			continue
		}
		records = append(records, model.OrderLogRecord{
			Date:       row[0],
			Time:       row[1],
			UserName:   row[2],
			ItemName:   row[3],
			Category:   row[4],
			Unit:       row[5],
			Quantity:   row[6],
			UnitPrice:  row[7],
			LineTotal:  row[8],
			OrderTotal: row[9],
		})
	}
	return records, skipped, nil
}
