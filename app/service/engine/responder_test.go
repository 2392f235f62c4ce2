package engine

import (
	"testing"

	"refugebot/app/service/conversation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func message(t *testing.T, c tgbotapi.Chattable) tgbotapi.MessageConfig {
	t.Helper()

	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("chattable is %T, want MessageConfig", c)
	}

	return msg
}

func TestMenuRidesOnPrecedingText(t *testing.T) {
	t.Parallel()

	messages := buildMessages(1, []conversation.Directive{
		conversation.SendText{Body: "pick one"},
		conversation.ShowMenu{Options: []string{"Food", "Clothing"}, Placeholder: "Category:"},
	})

	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}

	msg := message(t, messages[0])
	if msg.Text != "pick one" {
		t.Fatalf("text = %q", msg.Text)
	}

	keyboard, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok {
		t.Fatalf("reply markup is %T, want ReplyKeyboardMarkup", msg.ReplyMarkup)
	}
	if len(keyboard.Keyboard) != 2 {
		t.Fatalf("keyboard has %d rows, want 2", len(keyboard.Keyboard))
	}
	if !keyboard.OneTimeKeyboard || !keyboard.ResizeKeyboard {
		t.Fatal("keyboard is not one-time/resized")
	}
	if keyboard.InputFieldPlaceholder != "Category:" {
		t.Fatalf("placeholder = %q", keyboard.InputFieldPlaceholder)
	}
}

func TestDanglingMenuGetsPlaceholderText(t *testing.T) {
	t.Parallel()

	messages := buildMessages(1, []conversation.Directive{
		conversation.ShowMenu{Options: []string{"Yes", "No"}, Placeholder: "Please choose:"},
	})

	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}

	msg := message(t, messages[0])
	if msg.Text != "Please choose:" {
		t.Fatalf("text = %q", msg.Text)
	}
}

func TestClearMenuAttachesKeyboardRemoval(t *testing.T) {
	t.Parallel()

	messages := buildMessages(1, []conversation.Directive{
		conversation.SendText{Body: "done"},
		conversation.ClearMenu{},
	})

	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}

	msg := message(t, messages[0])
	if _, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardRemove); !ok {
		t.Fatalf("reply markup is %T, want ReplyKeyboardRemove", msg.ReplyMarkup)
	}
}

func TestLocationDirectiveBecomesLocationMessage(t *testing.T) {
	t.Parallel()

	messages := buildMessages(1, []conversation.Directive{
		conversation.SendText{Body: "Shelter A:"},
		conversation.SendLocation{Name: "Shelter A", Latitude: 32.09, Longitude: 34.46},
		conversation.SendText{Body: "search again?"},
		conversation.ShowMenu{Options: []string{"Yes", "No"}, Placeholder: "Please choose:"},
	})

	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}

	location, ok := messages[1].(tgbotapi.LocationConfig)
	if !ok {
		t.Fatalf("second message is %T, want LocationConfig", messages[1])
	}
	if location.Latitude != 32.09 || location.Longitude != 34.46 {
		t.Fatalf("coordinates = %v/%v", location.Latitude, location.Longitude)
	}

	if _, ok := message(t, messages[2]).ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup); !ok {
		t.Fatal("final message lost its menu")
	}
}

func TestShareLocationOptionRequestsLocation(t *testing.T) {
	t.Parallel()

	keyboard := replyKeyboard(conversation.ShowMenu{
		Options: []string{conversation.OptionShareLocation, "/skip"},
	})

	if !keyboard.Keyboard[0][0].RequestLocation {
		t.Fatal("share-location button does not request location")
	}
	if keyboard.Keyboard[1][0].RequestLocation {
		t.Fatal("/skip button requests location")
	}
}

func TestEventFromUpdate(t *testing.T) {
	t.Parallel()

	chat := &tgbotapi.Chat{ID: 42}

	tests := []struct {
		name    string
		message *tgbotapi.Message
		want    conversation.Event
	}{
		{
			name: "search command",
			message: &tgbotapi.Message{
				Chat: chat,
				Text: "/search",
				Entities: []tgbotapi.MessageEntity{
					{Type: "bot_command", Offset: 0, Length: 7},
				},
			},
			want: conversation.EntryCommand{Chat: 42},
		},
		{
			name: "cancel command",
			message: &tgbotapi.Message{
				Chat: chat,
				Text: "/cancel",
				Entities: []tgbotapi.MessageEntity{
					{Type: "bot_command", Offset: 0, Length: 7},
				},
			},
			want: conversation.CancelCommand{Chat: 42},
		},
		{
			name: "skip command",
			message: &tgbotapi.Message{
				Chat: chat,
				Text: "/skip",
				Entities: []tgbotapi.MessageEntity{
					{Type: "bot_command", Offset: 0, Length: 5},
				},
			},
			want: conversation.SkipCommand{Chat: 42},
		},
		{
			name: "unknown command is dropped",
			message: &tgbotapi.Message{
				Chat: chat,
				Text: "/help",
				Entities: []tgbotapi.MessageEntity{
					{Type: "bot_command", Offset: 0, Length: 5},
				},
			},
			want: nil,
		},
		{
			name: "location",
			message: &tgbotapi.Message{
				Chat:     chat,
				Location: &tgbotapi.Location{Latitude: 32.0897, Longitude: 34.4597},
			},
			want: conversation.LocationMessage{Chat: 42, Latitude: 32.0897, Longitude: 34.4597},
		},
		{
			name:    "plain text",
			message: &tgbotapi.Message{Chat: chat, Text: "Food"},
			want:    conversation.TextMessage{Chat: 42, Text: "Food"},
		},
		{
			name:    "empty message is dropped",
			message: &tgbotapi.Message{Chat: chat},
			want:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := eventFromUpdate(tgbotapi.Update{Message: tt.message})
			if got != tt.want {
				t.Fatalf("eventFromUpdate() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
