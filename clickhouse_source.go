package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pivolan/go_utils"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/variable_plots/domain/models"
)

// clickhouseSource pushes the heavy grouping into ClickHouse: each
// variable comes back as pre-aggregated (category, period, cnt) rows
// that the aggregators consume with weightField "cnt".
type clickhouseSource struct {
	db      *gorm.DB
	table   string
	unit    string
	timeCol string
}

func newClickhouseSource(dsn, table, unit string) (*clickhouseSource, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to clickhouse")
	}
	return &clickhouseSource{db: db, table: table, unit: unit}, nil
}

func getColumnAndTypeList(db *gorm.DB, tableName string) ([]models.ColumnInfo, error) {
	tx := db.Raw(fmt.Sprintf("DESCRIBE TABLE %s", tableName))
	if tx.Error != nil {
		return nil, tx.Error
	}
	var columns []models.ColumnInfo
	tx.Scan(&columns)
	return columns, nil
}

func isStringDBType(t string) bool {
	return go_utils.InArray(t, []string{"String", "Nullable(String)"})
}

func isDateDBType(t string) bool {
	return strings.HasPrefix(t, "Date")
}

func excludeColumn(name string) bool {
	return go_utils.InArray(name, []string{"id", "slug"})
}

func (s *clickhouseSource) Variables() ([]models.VariableSpec, error) {
	columns, err := getColumnAndTypeList(s.db, s.table)
	if err != nil {
		return nil, err
	}

	stringCols := []string{}
	for _, col := range columns {
		if s.timeCol == "" && isDateDBType(col.Type) {
			s.timeCol = col.Name
		}
		if isStringDBType(col.Type) && !excludeColumn(col.Name) {
			stringCols = append(stringCols, col.Name)
		}
	}
	if s.timeCol == "" {
		return nil, errors.Errorf("table %s has no date column", s.table)
	}
	if len(stringCols) == 0 {
		return nil, nil
	}

	uniq, err := s.uniqCounts(stringCols)
	if err != nil {
		return nil, err
	}

	specs := []models.VariableSpec{}
	for _, name := range stringCols {
		if uniq[name] < 2 || uniq[name] >= maxCategoricalCardinality {
			continue
		}
		specs = append(specs, models.VariableSpec{
			CategoryField: name,
			TimeField:     "period",
			WeightField:   "cnt",
		})
	}
	return specs, nil
}

func (s *clickhouseSource) uniqCounts(cols []string) (map[string]int64, error) {
	fields := make([]string, len(cols))
	for i, col := range cols {
		fields[i] = fmt.Sprintf("uniq(%s) as %s", col, col)
	}
	info := map[string]interface{}{}
	tx := s.db.Raw("SELECT " + strings.Join(fields, ",") + " FROM " + s.table)
	if tx.Error != nil {
		return nil, tx.Error
	}
	tx.Scan(info)

	out := map[string]int64{}
	for name, v := range info {
		out[name] = asInt64(v)
	}
	return out, nil
}

func asInt64(v interface{}) int64 {
	switch value := v.(type) {
	case int64:
		return value
	case uint64:
		return int64(value)
	case int:
		return int64(value)
	case float64:
		return int64(value)
	case string:
		n, _ := strconv.ParseInt(value, 10, 64)
		return n
	}
	return 0
}

func (s *clickhouseSource) Rows(v models.VariableSpec) ([]map[string]interface{}, error) {
	sql := fmt.Sprintf(
		"SELECT %[1]s, toString(date_trunc('%[2]s', %[3]s)) as period, count(*) as cnt FROM %[4]s GROUP BY 1, 2 ORDER BY 2",
		v.CategoryField, s.unit, s.timeCol, s.table)

	rows := []map[string]interface{}{}
	tx := s.db.Raw(sql)
	if tx.Error != nil {
		return nil, tx.Error
	}
	tx.Scan(&rows)
	return rows, nil
}
