package telegram

import "fmt"

const (
	btnNewTest     = "➕ Test yaratish"
	btnCheck       = "✅ Javoblarni tekshirish"
	btnFinish      = "🏆 Testni yakunlash"
	btnEditProfile = "📝 Profilni tahrirlash"
	btnContact     = "☎️ Admin bilan bo`g`lanish"
	btnSendPhone   = "📞 Raqamni yuborish"
)

func MainMenuKeyboard() *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: btnNewTest}, {Text: btnCheck}},
			{{Text: btnFinish}},
			{{Text: btnEditProfile}},
			{{Text: btnContact}},
		},
		ResizeKeyboard: true,
	}
}

func ContactRequestKeyboard() *ReplyKeyboardMarkup {
	return &ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{{Text: btnSendPhone, RequestContact: true}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// LiveStatusKeyboard is attached to the "test created" message so the
// creator can watch the running leaderboard.
func LiveStatusKeyboard(testID int64) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "📊 Holati", CallbackData: fmt.Sprintf("live_status:%d", testID)}},
		},
	}
}

// CertPaginationKeyboard pages through the template pool. currentIndex is a
// position in the pool's id list, not a template id.
func CertPaginationKeyboard(currentIndex, total int, templateID int) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{
				{Text: "◀️ Oldingi", CallbackData: fmt.Sprintf("cert_nav:prev:%d", currentIndex)},
				{Text: fmt.Sprintf("Tanlash (%d/%d)", templateID, total), CallbackData: fmt.Sprintf("cert_select:%d", templateID)},
				{Text: "Keyingi ▶️", CallbackData: fmt.Sprintf("cert_nav:next:%d", currentIndex)},
			},
			{
				{Text: "❌ Sertifikatsiz yakunlash", CallbackData: "cert_select:0"},
			},
		},
	}
}
