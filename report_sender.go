package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Telegram rejects large photos; bigger payloads go as documents.
const maxPhotoSize = 150000

// sendReportGraph delivers one rendered chart to a chat. Failures are
// logged, not fatal: delivery is best effort on top of the files
// already written to disk.
func sendReportGraph(api *tgbotapi.BotAPI, chatID int64, graph []byte, variable, kind string) {
	if len(graph) == 0 {
		return
	}
	fileName := fmt.Sprintf("%s_%s_%s.png",
		kind,
		sanitizeName(variable),
		time.Now().Format("20060102-150405"))
	pngFile := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}
	caption := reportCaption(kind, variable)

	var err error
	if len(graph) < maxPhotoSize {
		msg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		msg.Caption = caption
		_, err = api.Send(msg)
	} else {
		msg := tgbotapi.NewDocumentUpload(chatID, pngFile)
		msg.Caption = caption
		_, err = api.Send(msg)
	}
	if err != nil {
		log.Printf("cannot send %s chart for %s: %v", kind, variable, err)
	}
}

func reportCaption(kind, variable string) string {
	switch kind {
	case "bar":
		return fmt.Sprintf("Category counts: %s\nCategories ordered by global frequency, missing values shown as NA.", variable)
	case "rates":
		return fmt.Sprintf("Rate over time: %s\nShare of each category per period.", variable)
	}
	return fmt.Sprintf("Variable report: %s", variable)
}
