package main

import (
	"fmt"
	"log"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/variable_plots/config"
	"github.com/pivolan/variable_plots/domain/models"
)

func main() {
	cfg := config.GetConfig()
	if len(os.Args) < 2 {
		log.Fatalln("usage: variable_plots <csv file | clickhouse table>")
	}
	target := os.Args[1]

	var source RowSource
	if _, err := os.Stat(target); err == nil {
		ds, err := loadCSVDataset(target, cfg.PeriodUnit)
		if err != nil {
			log.Fatalln("cannot load csv", err)
		}
		fmt.Printf("loaded %s: %d rows, %d columns\n", target, len(ds.Rows), len(ds.Columns))
		source = newCSVSource(ds, cfg.PeriodUnit)
	} else {
		if cfg.DbDsn == "" {
			log.Fatalln("not a file and DB_DSN is empty:", target)
		}
		ch, err := newClickhouseSource(cfg.DbDsn, target, cfg.PeriodUnit)
		if err != nil {
			log.Fatalln("cannot connect to clickhouse", err)
		}
		source = ch
	}

	reports, err := runReports(source, 0, models.NormalizeByTime)
	if err != nil {
		log.Fatalln("cannot build reports", err)
	}
	if len(reports) == 0 {
		log.Fatalln("no categorical variables found in", target)
	}

	runDir, err := writeReportFiles(cfg.OutDir, reports)
	if err != nil {
		log.Fatalln("cannot write report files", err)
	}
	for _, report := range reports {
		fmt.Printf("%s\n%s\n", report.Variable, GenerateSummaryTable(report.Summary))
	}
	fmt.Println("report written to", runDir)

	if cfg.TgToken != "" && cfg.TgChatID != 0 {
		bot, err := tgbotapi.NewBotAPI(cfg.TgToken)
		if err != nil {
			log.Fatalln("tg error", err)
		}
		for _, report := range reports {
			sendReportGraph(bot, cfg.TgChatID, report.BarPNG, report.Variable, "bar")
			sendReportGraph(bot, cfg.TgChatID, report.TracePNG, report.Variable, "rates")
		}
	}
}
