package engine

import (
	"refugebot/app/service/conversation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// buildMessages turns a directive list into Telegram messages. Telegram can
// only carry a reply keyboard on a message, so a ShowMenu or ClearMenu
// directly after a SendText rides on that message; a dangling one gets its
// placeholder as the message text.
func buildMessages(chatID int64, directives []conversation.Directive) []tgbotapi.Chattable {
	messages := make([]tgbotapi.Chattable, 0, len(directives))
	var pending *tgbotapi.MessageConfig

	flush := func() {
		if pending != nil {
			messages = append(messages, *pending)
			pending = nil
		}
	}

	for _, directive := range directives {
		switch d := directive.(type) {
		case conversation.SendText:
			flush()

			message := tgbotapi.NewMessage(chatID, d.Body)
			pending = &message
		case conversation.ShowMenu:
			if pending == nil {
				message := tgbotapi.NewMessage(chatID, d.Placeholder)
				pending = &message
			}

			pending.ReplyMarkup = replyKeyboard(d)
			flush()
		case conversation.ClearMenu:
			if pending == nil {
				continue
			}

			pending.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
			flush()
		case conversation.SendLocation:
			flush()

			messages = append(messages, tgbotapi.NewLocation(chatID, d.Latitude, d.Longitude))
		}
	}

	flush()

	return messages
}

func replyKeyboard(menu conversation.ShowMenu) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(menu.Options))

	for _, option := range menu.Options {
		button := tgbotapi.NewKeyboardButton(option)
		if option == conversation.OptionShareLocation {
			button = tgbotapi.NewKeyboardButtonLocation(option)
		}

		rows = append(rows, tgbotapi.NewKeyboardButtonRow(button))
	}

	keyboard := tgbotapi.NewOneTimeReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	keyboard.InputFieldPlaceholder = menu.Placeholder

	return keyboard
}
