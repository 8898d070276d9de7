// Package ndnsim exports simulation tables as the CSV files an ndnSIM
// scenario consumes.
package ndnsim

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/zhongda-xia/leo-demo/pkg/attachment"
	"github.com/zhongda-xia/leo-demo/pkg/routing"
)

// detached is how an epoch with no attachment is encoded in the CSVs.
const detached = "-"

// Exporter writes the ndnSIM file set under one output directory.
type Exporter struct {
	dir string
}

// NewExporter creates the output directory if needed.
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create ndnSIM output directory")
	}
	return &Exporter{dir: dir}, nil
}

func (e *Exporter) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(e.dir, name))
	if err != nil {
		return errors.Wrapf(err, "create %s", name)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	if err := w.WriteAll(rows); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "flush %s", name)
	}
	return f.Close()
}

// WriteNodes stores nodes.csv with one row per satellite and station.
func (e *Exporter) WriteNodes(satIDs, gtIDs []string) error {
	rows := make([][]string, 0, len(satIDs)+len(gtIDs))
	for _, id := range satIDs {
		rows = append(rows, []string{id, "Satellite"})
	}
	for _, id := range gtIDs {
		rows = append(rows, []string{id, "Station"})
	}
	return e.writeCSV("nodes.csv", []string{"Name", "Type"}, rows)
}

// WriteISLs stores ISLs.csv from the persistent edge set.
func (e *Exporter) WriteISLs(edges [][2]string) error {
	rows := make([][]string, len(edges))
	for i, edge := range edges {
		rows[i] = []string{edge[0], edge[1]}
	}
	return e.writeCSV("ISLs.csv", []string{"First", "Second"}, rows)
}

// WriteAttachments stores one attachments_<gt>.csv per station, run-length
// compressed: a row is emitted only when the attachment changes.
func (e *Exporter) WriteAttachments(table attachment.Table) error {
	gtIDs := make([]string, 0, len(table))
	for gtID := range table {
		gtIDs = append(gtIDs, gtID)
	}
	sort.Strings(gtIDs)

	for _, gtID := range gtIDs {
		attachments := table[gtID]
		var rows [][]string
		for epoch, satID := range attachments {
			if epoch != 0 && satID == attachments[epoch-1] {
				continue
			}
			if satID == attachment.None {
				satID = detached
			}
			rows = append(rows, []string{strconv.Itoa(epoch), satID})
		}
		name := fmt.Sprintf("attachments_%s.csv", gtID)
		if err := e.writeCSV(name, []string{"Time", "Satellite"}, rows); err != nil {
			return err
		}
	}
	return nil
}

// WritePairs stores pairs.csv and one routes_<consumer>+<producer>.csv
// per pair with the per-epoch pipe-joined path.
func (e *Exporter) WritePairs(pairs [][2]string, routes map[[2]string]routing.PairRoutes) error {
	pairRows := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		consumer, producer := pair[0], pair[1]
		route, ok := routes[pair]
		if !ok {
			return errors.Errorf("no routes for pair %s -> %s", consumer, producer)
		}

		epochs := make([]int, 0, len(route))
		for epoch := range route {
			epochs = append(epochs, epoch)
		}
		sort.Ints(epochs)

		rows := make([][]string, len(epochs))
		for i, epoch := range epochs {
			rows[i] = []string{strconv.Itoa(epoch), strings.Join(route[epoch], "|")}
		}
		name := fmt.Sprintf("routes_%s+%s.csv", consumer, producer)
		if err := e.writeCSV(name, []string{"Time", "Route"}, rows); err != nil {
			return err
		}
		pairRows = append(pairRows, []string{consumer, producer})
	}
	return e.writeCSV("pairs.csv", []string{"Consumer", "Producer"}, pairRows)
}
