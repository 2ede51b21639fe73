package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"os"
	"strconv"
	"strings"

	"test-checker-backend/internal/answerkey"
	"test-checker-backend/internal/certificate"
	"test-checker-backend/internal/ranking"
	"test-checker-backend/internal/services"
)

const liveStatusLimit = 10

// UpdateHandler routes incoming updates to the chat flows. One instance
// serves all chats; per-user flow progress lives in the StateManager.
type UpdateHandler struct {
	client       *Client
	state        *StateManager
	users        *services.UserService
	tests        *services.TestService
	results      *services.ResultService
	finalize     *services.FinalizeService
	pool         certificate.Pool
	sender       *Sender
	adminContact string
}

func NewUpdateHandler(
	client *Client,
	state *StateManager,
	users *services.UserService,
	tests *services.TestService,
	results *services.ResultService,
	finalize *services.FinalizeService,
	pool certificate.Pool,
	sender *Sender,
	adminContact string,
) *UpdateHandler {
	return &UpdateHandler{
		client:       client,
		state:        state,
		users:        users,
		tests:        tests,
		results:      results,
		finalize:     finalize,
		pool:         pool,
		sender:       sender,
		adminContact: adminContact,
	}
}

func (h *UpdateHandler) Handle(upd Update) {
	switch {
	case upd.CallbackQuery != nil:
		h.handleCallback(upd.CallbackQuery)
	case upd.Message != nil:
		h.handleMessage(upd.Message)
	}
}

func (h *UpdateHandler) handleMessage(msg *Message) {
	if msg.From == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch text {
	case "/start":
		h.cmdStart(chatID, userID)
	case "/admin":
		h.cmdAdminStats(chatID, userID)
	case "/broadcast":
		h.cmdAdminPrompt(chatID, userID, StateAdminBroadcast, "Barcha foydalanuvchilarga yuboriladigan xabarni kiriting:")
	case "/deltest":
		h.cmdAdminPrompt(chatID, userID, StateAdminDeleteTest, "O'chiriladigan test kodini kiriting:")
	case btnNewTest:
		h.startNewTest(chatID, userID)
	case btnCheck:
		h.startCheck(chatID, userID)
	case btnFinish:
		h.startFinish(chatID, userID)
	case btnEditProfile:
		h.startEditProfile(chatID, userID)
	case btnContact:
		h.reply(chatID, fmt.Sprintf("Admin bilan bog'lanish: %s", h.adminContact))
	default:
		h.dispatchState(msg, chatID, userID, text)
	}
}

func (h *UpdateHandler) dispatchState(msg *Message, chatID, userID int64, text string) {
	st := h.state.Get(userID)
	switch st.State {
	case StateRegFirstName, StateEditFirstName:
		h.stateFirstName(chatID, userID, text, st.State)
	case StateRegLastName, StateEditLastName:
		h.stateLastName(chatID, userID, text, st.State)
	case StateRegPhone, StateEditPhone:
		h.statePhone(msg, chatID, userID, st)
	case StateNewTestTitle:
		h.stateNewTestTitle(chatID, userID, text)
	case StateNewTestKey:
		h.stateNewTestKey(chatID, userID, text, st)
	case StateCheckCode:
		h.stateCheckCode(chatID, userID, text)
	case StateCheckAnswers:
		h.stateCheckAnswers(chatID, userID, text, st)
	case StateFinishCode:
		h.stateFinishCode(chatID, userID, text)
	case StateAdminBroadcast:
		h.stateAdminBroadcast(chatID, userID, text)
	case StateAdminDeleteTest:
		h.stateAdminDeleteTest(chatID, userID, text)
	default:
		h.reply(chatID, "Quyidagi menyudan birini tanlang 👇")
	}
}

// ---- registration and profile ----

func (h *UpdateHandler) cmdStart(chatID, userID int64) {
	h.state.Clear(userID)

	user, err := h.users.Get(userID)
	if err != nil {
		log.Printf("handler: load user %d: %v", userID, err)
		h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		return
	}
	if user != nil {
		h.replyKb(chatID, fmt.Sprintf("Assalomu alaykum, %s! 👋", html.EscapeString(user.FirstName)), MainMenuKeyboard())
		return
	}

	h.reply(chatID, "Assalomu alaykum! 👋\nBotdan foydalanish uchun ro'yxatdan o'ting.\n\nIsmingizni kiriting:")
	h.state.Set(userID, &UserState{State: StateRegFirstName})
}

func (h *UpdateHandler) startEditProfile(chatID, userID int64) {
	if !h.requireRegistered(chatID, userID) {
		return
	}
	h.reply(chatID, "Yangi ismingizni kiriting:")
	h.state.Set(userID, &UserState{State: StateEditFirstName})
}

func (h *UpdateHandler) stateFirstName(chatID, userID int64, text, current string) {
	if len([]rune(text)) < 2 {
		h.reply(chatID, "Ism juda qisqa. Qaytadan kiriting:")
		return
	}
	next := StateRegLastName
	if current == StateEditFirstName {
		next = StateEditLastName
	}
	h.state.UpdateField(userID, func(s *UserState) {
		s.FirstName = text
		s.State = next
	})
	h.reply(chatID, "Familiyangizni kiriting:")
}

func (h *UpdateHandler) stateLastName(chatID, userID int64, text, current string) {
	if len([]rune(text)) < 2 {
		h.reply(chatID, "Familiya juda qisqa. Qaytadan kiriting:")
		return
	}
	next := StateRegPhone
	if current == StateEditLastName {
		next = StateEditPhone
	}
	h.state.UpdateField(userID, func(s *UserState) {
		s.LastName = text
		s.State = next
	})
	h.replyKb(chatID, "Telefon raqamingizni pastdagi tugma orqali yuboring:", ContactRequestKeyboard())
}

func (h *UpdateHandler) statePhone(msg *Message, chatID, userID int64, st *UserState) {
	if msg.Contact == nil {
		h.replyKb(chatID, "Iltimos, raqamni pastdagi tugma orqali yuboring.", ContactRequestKeyboard())
		return
	}
	if msg.Contact.UserID != 0 && msg.Contact.UserID != userID {
		h.reply(chatID, "Faqat o'zingizning raqamingizni yuborishingiz mumkin.")
		return
	}

	if _, err := h.users.Register(userID, st.FirstName, st.LastName, msg.Contact.PhoneNumber); err != nil {
		log.Printf("handler: register user %d: %v", userID, err)
		h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		return
	}
	h.state.Clear(userID)
	h.replyKb(chatID, "✅ Ma'lumotlaringiz saqlandi!", MainMenuKeyboard())
}

func (h *UpdateHandler) requireRegistered(chatID, userID int64) bool {
	user, err := h.users.Get(userID)
	if err != nil {
		log.Printf("handler: load user %d: %v", userID, err)
		h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		return false
	}
	if user == nil {
		h.reply(chatID, "Avval ro'yxatdan o'ting: /start")
		return false
	}
	return true
}

// ---- test creation ----

func (h *UpdateHandler) startNewTest(chatID, userID int64) {
	if !h.requireRegistered(chatID, userID) {
		return
	}
	h.reply(chatID, "Test nomini kiriting:")
	h.state.Set(userID, &UserState{State: StateNewTestTitle})
}

func (h *UpdateHandler) stateNewTestTitle(chatID, userID int64, text string) {
	if len([]rune(text)) < 3 {
		h.reply(chatID, "Test nomi juda qisqa. Qaytadan kiriting:")
		return
	}
	h.state.UpdateField(userID, func(s *UserState) {
		s.TestTitle = text
		s.State = StateNewTestKey
	})
	h.reply(chatID, "Javoblar kalitini kiriting.\n\nNamuna: <code>1a2b3c4d</code>")
}

func (h *UpdateHandler) stateNewTestKey(chatID, userID int64, text string, st *UserState) {
	test, err := h.tests.CreateTest(userID, st.TestTitle, text)
	if err != nil {
		switch {
		case errors.Is(err, answerkey.ErrMalformedKey):
			h.reply(chatID, "Kalit formati noto'g'ri. Savol raqami va javob harfi ketma-ket yoziladi, masalan: <code>1a2b3c4d</code>")
		case errors.Is(err, answerkey.ErrKeyTooShort):
			h.reply(chatID, "Kalit juda qisqa. Kamida ikkita savol bo'lishi kerak, masalan: <code>1a2b</code>")
		default:
			log.Printf("handler: create test for %d: %v", userID, err)
			h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		}
		return
	}

	h.state.Clear(userID)

	key, _ := answerkey.Parse(test.Answer)
	msg := fmt.Sprintf(
		"✅ Test yaratildi!\n\n📝 Nomi: %s\n🔑 Kod: <code>%d</code>\n📋 Kalit: <code>%s</code>\n❓ Savollar soni: %d\n\nIshtirokchilarga kodni tarqating. Ular \"%s\" tugmasi orqali javob topshirishadi.",
		html.EscapeString(test.Title), test.ID, answerkey.Serialize(key), len(key), btnCheck,
	)
	h.replyMarkup(chatID, msg, LiveStatusKeyboard(test.ID))
}

// ---- answer checking ----

func (h *UpdateHandler) startCheck(chatID, userID int64) {
	if !h.requireRegistered(chatID, userID) {
		return
	}
	h.reply(chatID, "Test kodini kiriting (5 xonali raqam):")
	h.state.Set(userID, &UserState{State: StateCheckCode})
}

func (h *UpdateHandler) stateCheckCode(chatID, userID int64, text string) {
	code, ok := parseTestCode(text)
	if !ok {
		h.reply(chatID, "Test kodi 5 xonali raqam bo'lishi kerak, masalan: <code>12345</code>")
		return
	}

	test, err := h.tests.GetTest(code)
	if err != nil {
		if errors.Is(err, services.ErrTestNotFound) {
			h.reply(chatID, "Bunday kodli test topilmadi. Qaytadan kiriting:")
			return
		}
		log.Printf("handler: load test %d: %v", code, err)
		h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		return
	}
	if !test.Status {
		h.state.Clear(userID)
		h.reply(chatID, "Bu test yakunlangan, javob topshirib bo'lmaydi.")
		return
	}

	done, err := h.results.HasCompleted(userID, test.ID)
	if err != nil {
		log.Printf("handler: completion check %d/%d: %v", userID, test.ID, err)
		h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		return
	}
	if done {
		h.state.Clear(userID)
		h.reply(chatID, "Siz bu testga allaqachon javob topshirgansiz.")
		return
	}

	h.state.UpdateField(userID, func(s *UserState) {
		s.CheckTestID = test.ID
		s.CorrectKey = test.Answer
		s.State = StateCheckAnswers
	})
	h.reply(chatID, fmt.Sprintf("📝 Test: %s\n\nJavoblaringizni kiriting.\nNamuna: <code>1a2b3c</code>", html.EscapeString(test.Title)))
}

func (h *UpdateHandler) stateCheckAnswers(chatID, userID int64, text string, st *UserState) {
	submitted, err := answerkey.ParseSubmission(text)
	if err != nil {
		h.reply(chatID, "Javoblar formati noto'g'ri. Masalan: <code>1a2b3c</code>. Qaytadan kiriting:")
		return
	}

	key, err := answerkey.Parse(st.CorrectKey)
	if err != nil {
		log.Printf("handler: stored key for test %d is invalid: %v", st.CheckTestID, err)
		h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		return
	}

	result, err := h.results.SaveScored(userID, st.CheckTestID, key, submitted, answerkey.Serialize(submitted))
	if err != nil {
		log.Printf("handler: save result %d/%d: %v", userID, st.CheckTestID, err)
		h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		return
	}
	h.state.Clear(userID)

	percent := answerkey.Percent(result.CorrectCount, result.TotalQuestions)
	h.replyKb(chatID, fmt.Sprintf(
		"✅ Javobingiz qabul qilindi!\n\n📊 Natija: %d/%d (%.1f%%)\n\nTest yakunlangach to'liq hisobot yuboriladi.",
		result.CorrectCount, result.TotalQuestions, percent,
	), MainMenuKeyboard())

	h.notifyCreator(st.CheckTestID, userID, result.CorrectCount, result.TotalQuestions)
}

func (h *UpdateHandler) notifyCreator(testID, userID int64, correct, total int) {
	test, err := h.tests.GetTest(testID)
	if err != nil {
		log.Printf("handler: notify creator of %d: %v", testID, err)
		return
	}
	name := h.users.DisplayName(userID, "Noma'lum")
	h.reply(test.CreatorID, fmt.Sprintf(
		"📥 Yangi javob!\n\n📝 Test: %s\n👤 Ishtirokchi: %s\n📊 Natija: %d/%d",
		html.EscapeString(test.Title), html.EscapeString(name), correct, total,
	))
}

// ---- finishing ----

func (h *UpdateHandler) startFinish(chatID, userID int64) {
	if !h.requireRegistered(chatID, userID) {
		return
	}
	h.reply(chatID, "Yakunlanadigan test kodini kiriting:")
	h.state.Set(userID, &UserState{State: StateFinishCode})
}

func (h *UpdateHandler) stateFinishCode(chatID, userID int64, text string) {
	code, ok := parseTestCode(text)
	if !ok {
		h.reply(chatID, "Test kodi 5 xonali raqam bo'lishi kerak, masalan: <code>12345</code>")
		return
	}

	outcome, err := h.finalize.Finalize(code, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTestNotFound):
			h.reply(chatID, "Bunday kodli test topilmadi. Qaytadan kiriting:")
		case errors.Is(err, services.ErrNotCreator):
			h.state.Clear(userID)
			h.reply(chatID, "Faqat test yaratuvchisi uni yakunlashi mumkin.")
		case errors.Is(err, services.ErrAlreadyFinished):
			h.state.Clear(userID)
			h.reply(chatID, "Bu test allaqachon yakunlangan.")
		default:
			log.Printf("handler: finalize test %d: %v", code, err)
			h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		}
		return
	}
	h.state.Clear(userID)

	key, _ := answerkey.Parse(outcome.Test.Answer)
	if len(outcome.Results) == 0 {
		h.replyKb(chatID, fmt.Sprintf(
			"🏁 Test yakunlandi.\n\n📝 Nomi: %s\n🔑 Kalit: <code>%s</code>\n\nHech kim javob topshirmadi.",
			html.EscapeString(outcome.Test.Title), answerkey.Serialize(key),
		), MainMenuKeyboard())
		return
	}

	h.reply(chatID, h.formatFinalSummary(outcome, key))

	if outcome.ReportPath != "" {
		if _, err := h.client.SendDocument(chatID, outcome.ReportPath, "📊 Ishtirokchilar hisoboti", ""); err != nil {
			log.Printf("handler: send report for %d: %v", outcome.Test.ID, err)
		}
		if err := os.Remove(outcome.ReportPath); err != nil {
			log.Printf("handler: remove report %s: %v", outcome.ReportPath, err)
		}
	}

	go h.sendPersonalReports(outcome, key)

	h.promptCertificate(chatID, userID, outcome)
}

func (h *UpdateHandler) formatFinalSummary(outcome *services.FinalizeOutcome, key answerkey.Key) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏁 Test yakunlandi!\n\n📝 Nomi: %s\n🔑 Kalit: <code>%s</code>\n👥 Ishtirokchilar: %d\n\n🏆 Natijalar:\n",
		html.EscapeString(outcome.Test.Title), answerkey.Serialize(key), len(outcome.Results))
	for _, e := range outcome.Leaderboard {
		fmt.Fprintf(&b, "%d. %s — %d/%d (%.1f%%)\n",
			e.Rank, html.EscapeString(e.FullName()), e.Correct, e.Total, e.Percent())
	}
	return b.String()
}

// sendPersonalReports delivers a per-question breakdown to every
// participant after the test is closed.
func (h *UpdateHandler) sendPersonalReports(outcome *services.FinalizeOutcome, key answerkey.Key) {
	for _, e := range outcome.Leaderboard {
		submitted, err := answerkey.ParseSubmission(e.AnswersRaw)
		if err != nil {
			log.Printf("handler: stored answers for user %d unparsable: %v", e.UserID, err)
			continue
		}
		h.reply(e.UserID, formatUserReport(outcome.Test.Title, key, submitted, e))
	}
}

func formatUserReport(title string, key, submitted answerkey.Key, e ranking.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏁 \"%s\" testi yakunlandi!\n\n📊 Natijangiz: %d/%d (%.1f%%)\n🏆 O'rningiz: %d\n\n",
		html.EscapeString(title), e.Correct, e.Total, e.Percent(), e.Rank)
	for _, q := range key.Questions() {
		got, answered := submitted[q]
		switch {
		case !answered:
			fmt.Fprintf(&b, "%d. — ❌ (to'g'ri javob: %c)\n", q, key[q])
		case got == key[q]:
			fmt.Fprintf(&b, "%d. %c ✅\n", q, got)
		default:
			fmt.Fprintf(&b, "%d. %c ❌ (to'g'ri javob: %c)\n", q, got, key[q])
		}
	}
	return b.String()
}

// ---- certificate selection ----

func (h *UpdateHandler) promptCertificate(chatID, userID int64, outcome *services.FinalizeOutcome) {
	ids := h.pool.IDs()
	if len(ids) == 0 {
		return
	}
	msgID := h.sendCertPreview(chatID, 0)
	h.state.Set(userID, &UserState{
		State:     StateCertPick,
		CertIndex: 0,
		CertMsgID: msgID,
		Finalize:  outcome,
	})
}

// sendCertPreview shows the template at position index in the pool's id
// list. Falls back to a plain message when the background cannot be sent.
func (h *UpdateHandler) sendCertPreview(chatID int64, index int) int64 {
	ids := h.pool.IDs()
	id := ids[index]
	tpl, err := h.pool.Get(id)
	if err != nil {
		return 0
	}

	caption := fmt.Sprintf("🎖 Sertifikat dizayni %d/%d\n\nIshtirokchilarga sertifikat tayyorlansinmi?", index+1, len(ids))
	kb := CertPaginationKeyboard(index, len(ids), id)

	msgID, err := h.client.SendPhoto(chatID, tpl.Background, caption, kb)
	if err != nil {
		log.Printf("handler: send template preview %d: %v", id, err)
		msgID, err = h.client.SendMessage(chatID, caption, "HTML", kb)
		if err != nil {
			log.Printf("handler: send template prompt: %v", err)
			return 0
		}
	}
	return msgID
}

// ---- callbacks ----

func (h *UpdateHandler) handleCallback(cb *CallbackQuery) {
	parts := strings.Split(cb.Data, ":")
	switch parts[0] {
	case "live_status":
		h.callbackLiveStatus(cb, parts)
	case "cert_nav":
		h.callbackCertNav(cb, parts)
	case "cert_select":
		h.callbackCertSelect(cb, parts)
	default:
		h.ack(cb.ID, "")
	}
}

func (h *UpdateHandler) callbackLiveStatus(cb *CallbackQuery, parts []string) {
	if len(parts) != 2 || cb.Message == nil {
		h.ack(cb.ID, "")
		return
	}
	testID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		h.ack(cb.ID, "")
		return
	}

	results, err := h.results.ResultsWithUsers(testID)
	if err != nil {
		log.Printf("handler: live status for %d: %v", testID, err)
		h.ack(cb.ID, "Xatolik yuz berdi")
		return
	}
	if len(results) == 0 {
		if err := h.client.AnswerCallbackQuery(cb.ID, "Hali hech kim javob topshirmadi", true); err != nil {
			log.Printf("handler: answer callback: %v", err)
		}
		return
	}

	entries := ranking.Rank(results, ranking.TieBreakTimestamp)
	shown := entries
	if len(shown) > liveStatusLimit {
		shown = shown[:liveStatusLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Joriy holat (%d ta ishtirokchi):\n\n", len(entries))
	for _, e := range shown {
		fmt.Fprintf(&b, "%d. %s — %d/%d\n", e.Rank, html.EscapeString(e.FullName()), e.Correct, e.Total)
	}
	h.reply(cb.Message.Chat.ID, b.String())
	h.ack(cb.ID, "")
}

func (h *UpdateHandler) callbackCertNav(cb *CallbackQuery, parts []string) {
	if len(parts) != 3 || cb.Message == nil {
		h.ack(cb.ID, "")
		return
	}
	userID := cb.From.ID
	st := h.state.Get(userID)
	if st.State != StateCertPick {
		h.ack(cb.ID, "Bu tanlov eskirgan")
		return
	}

	ids := h.pool.IDs()
	if len(ids) == 0 {
		h.ack(cb.ID, "")
		return
	}
	// Callback payloads arrive from the client; navigate from the stored
	// position instead.
	index := stepCertIndex(parts[1], st.CertIndex, len(ids))

	if err := h.client.DeleteMessage(cb.Message.Chat.ID, cb.Message.MessageID); err != nil {
		log.Printf("handler: delete preview: %v", err)
	}
	msgID := h.sendCertPreview(cb.Message.Chat.ID, index)
	h.state.UpdateField(userID, func(s *UserState) {
		s.CertIndex = index
		s.CertMsgID = msgID
	})
	h.ack(cb.ID, "")
}

func (h *UpdateHandler) callbackCertSelect(cb *CallbackQuery, parts []string) {
	if len(parts) != 2 || cb.Message == nil {
		h.ack(cb.ID, "")
		return
	}
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	st := h.state.Get(userID)
	if st.State != StateCertPick || st.Finalize == nil {
		h.ack(cb.ID, "Bu tanlov eskirgan")
		return
	}

	templateID, err := strconv.Atoi(parts[1])
	if err != nil {
		h.ack(cb.ID, "")
		return
	}

	outcome := st.Finalize
	h.state.Clear(userID)
	if err := h.client.DeleteMessage(chatID, cb.Message.MessageID); err != nil {
		log.Printf("handler: delete preview: %v", err)
	}

	if templateID == 0 {
		h.ack(cb.ID, "")
		h.replyKb(chatID, "Test sertifikatsiz yakunlandi.", MainMenuKeyboard())
		return
	}

	h.ack(cb.ID, "Sertifikatlar tayyorlanmoqda...")
	h.reply(chatID, "⏳ Sertifikatlar tayyorlanmoqda, biroz kuting...")
	go h.runCertificates(chatID, outcome, templateID)
}

func (h *UpdateHandler) runCertificates(chatID int64, outcome *services.FinalizeOutcome, templateID int) {
	res, err := h.finalize.Certificates(context.Background(), outcome, templateID)
	if err != nil {
		switch {
		case errors.Is(err, certificate.ErrTemplateNotFound):
			h.reply(chatID, "Tanlangan dizayn topilmadi.")
		case errors.Is(err, certificate.ErrMergeFailed):
			h.reply(chatID, "Sertifikatlarni birlashtirishda xatolik yuz berdi.")
		default:
			log.Printf("handler: certificate batch for %d: %v", outcome.Test.ID, err)
			h.reply(chatID, "Sertifikat tayyorlashda xatolik yuz berdi.")
		}
		return
	}

	caption := fmt.Sprintf("🎖 Sertifikatlar tayyor! (%d ta)", res.Rendered)
	if _, err := h.client.SendDocument(chatID, res.PDFPath, caption, ""); err != nil {
		log.Printf("handler: send certificates for %d: %v", outcome.Test.ID, err)
		h.reply(chatID, "Sertifikat faylini yuborishda xatolik yuz berdi.")
	}
	if err := os.Remove(res.PDFPath); err != nil {
		log.Printf("handler: remove %s: %v", res.PDFPath, err)
	}

	if len(res.Failures) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "⚠️ %d ta sertifikat tayyorlanmadi:\n", len(res.Failures))
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "• %s\n", html.EscapeString(f.Name))
		}
		h.reply(chatID, b.String())
	}
}

// ---- admin ----

func (h *UpdateHandler) cmdAdminStats(chatID, userID int64) {
	if !h.users.IsAdmin(userID) {
		h.reply(chatID, "Bu buyruq faqat adminlar uchun.")
		return
	}

	users, _ := h.users.Count()
	tests, _ := h.tests.Count()
	results, _ := h.results.Count()
	h.reply(chatID, fmt.Sprintf(
		"👮 Admin panel\n\n👥 Foydalanuvchilar: %d\n📝 Testlar: %d\n📊 Natijalar: %d\n\nBuyruqlar:\n/broadcast — xabar tarqatish\n/deltest — testni o'chirish",
		users, tests, results,
	))
}

func (h *UpdateHandler) cmdAdminPrompt(chatID, userID int64, state, prompt string) {
	if !h.users.IsAdmin(userID) {
		h.reply(chatID, "Bu buyruq faqat adminlar uchun.")
		return
	}
	h.reply(chatID, prompt)
	h.state.Set(userID, &UserState{State: state})
}

func (h *UpdateHandler) stateAdminBroadcast(chatID, userID int64, text string) {
	h.state.Clear(userID)

	ids, err := h.users.UserIDs()
	if err != nil {
		log.Printf("handler: broadcast recipients: %v", err)
		h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		return
	}
	h.reply(chatID, fmt.Sprintf("📢 Xabar %d ta foydalanuvchiga yuborilmoqda...", len(ids)))
	go h.sender.SendToMany(ids, text)
}

func (h *UpdateHandler) stateAdminDeleteTest(chatID, userID int64, text string) {
	code, ok := parseTestCode(text)
	if !ok {
		h.reply(chatID, "Test kodi 5 xonali raqam bo'lishi kerak.")
		return
	}
	h.state.Clear(userID)

	if err := h.tests.DeleteTest(code); err != nil {
		if errors.Is(err, services.ErrTestNotFound) {
			h.reply(chatID, "Bunday kodli test topilmadi.")
			return
		}
		log.Printf("handler: delete test %d: %v", code, err)
		h.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		return
	}
	h.reply(chatID, fmt.Sprintf("🗑 Test %d va uning natijalari o'chirildi.", code))
}

// ---- helpers ----

// stepCertIndex moves one position through the pool list, wrapping at both
// ends. An out-of-range current position resets to the start.
func stepCertIndex(dir string, current, total int) int {
	if total <= 0 {
		return 0
	}
	if current < 0 || current >= total {
		current = 0
	}
	if dir == "next" {
		return (current + 1) % total
	}
	return (current - 1 + total) % total
}

func parseTestCode(text string) (int64, bool) {
	if len(text) != 5 {
		return 0, false
	}
	code, err := strconv.ParseInt(text, 10, 64)
	if err != nil || code < 10000 {
		return 0, false
	}
	return code, true
}

func (h *UpdateHandler) reply(chatID int64, text string) {
	if _, err := h.client.SendMessage(chatID, text, "HTML", nil); err != nil {
		log.Printf("handler: send to %d: %v", chatID, err)
	}
}

func (h *UpdateHandler) replyKb(chatID int64, text string, kb *ReplyKeyboardMarkup) {
	if _, err := h.client.SendMessage(chatID, text, "HTML", kb); err != nil {
		log.Printf("handler: send to %d: %v", chatID, err)
	}
}

func (h *UpdateHandler) replyMarkup(chatID int64, text string, kb *InlineKeyboardMarkup) {
	if _, err := h.client.SendMessage(chatID, text, "HTML", kb); err != nil {
		log.Printf("handler: send to %d: %v", chatID, err)
	}
}

func (h *UpdateHandler) ack(callbackID, text string) {
	if err := h.client.AnswerCallbackQuery(callbackID, text, false); err != nil {
		log.Printf("handler: answer callback: %v", err)
	}
}
