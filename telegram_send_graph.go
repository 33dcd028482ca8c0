package main

import (
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// maxSizePhoto is the largest PNG sent as a photo; bigger ones go as documents.
const maxSizePhoto = 150000

// messageSender is the part of *tgbotapi.BotAPI used to deliver results.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// sendStatsTable sends the rendered statistics table as preformatted HTML.
func sendStatsTable(api messageSender, chatID int64, stem, statsTable string) error {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("<b>%s</b>\n<pre>%s</pre>", html.EscapeString(stem), html.EscapeString(statsTable)))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := api.Send(msg); err != nil {
		return fmt.Errorf("error sending statistics table: %w", err)
	}
	return nil
}

// sendGraphVisualization отправляет PNG в чат: как фото, а если файл слишком
// большой, то как документ.
func sendGraphVisualization(api messageSender, chatID int64, fileName string, graph []byte, caption string) error {
	pngFile := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}

	var msg tgbotapi.Chattable
	if len(graph) < maxSizePhoto {
		photo := tgbotapi.NewPhotoUpload(chatID, pngFile)
		photo.Caption = caption
		msg = photo
	} else {
		doc := tgbotapi.NewDocumentUpload(chatID, pngFile)
		doc.Caption = caption
		msg = doc
	}

	if _, err := api.Send(msg); err != nil {
		log.Printf("error sending chart %s: %v", fileName, err)
		return fmt.Errorf("error sending chart %s: %w", fileName, err)
	}
	return nil
}

// publishTelegram delivers the statistics table and every chart of the run.
func publishTelegram(api messageSender, chatID int64, runID, stem, statsTable string, charts []artifact) error {
	if err := sendStatsTable(api, chatID, stem, statsTable); err != nil {
		return err
	}
	for _, chart := range charts {
		caption := fmt.Sprintf("%s: %s (run %s)", stem, chart.name, runID)
		if err := sendGraphVisualization(api, chatID, chart.name, chart.data, caption); err != nil {
			return err
		}
	}
	log.Printf("[%s] telegram: sent %d charts to chat %d", runID, len(charts), chatID)
	return nil
}
