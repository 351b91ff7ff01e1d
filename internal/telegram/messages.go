package telegram

const (
	msgErrorGeneric  = "Кешіріңіз, қате орын алды. Кейінірек қайталап көріңіз."
	msgErrorVoice    = "Дауысты хабарламаны өңдеу кезінде қате орын алды."
	msgErrorNoSpeech = "Дауысты тану мүмкін болмады. Аудиода сөз табылмады."
	msgTextTooLong   = "Мәтін тым ұзын. Қысқарақ хабарлама жіберіңіз."
	msgVoiceTooLarge = "Дауысты хабарлама тым үлкен. Қысқарақ жіберіңіз (макс. ~30 сек)."
	msgAudioTooLarge = "Аудио файл тым үлкен. Қысқарақ аудио жіберіңіз (макс. 5 МБ)."
	msgEmptyResponse = "Жауап дайындау мүмкін болмады."
	replyVoiceName   = "reply.m4a"
)

// Markdown (legacy): *жирный*
const welcomeText = `Сәлем! Мен *AI Ғарыш Көмекші* — қазақ тіліндегі дауысты көмекші.

*Қалай пайдалануға болады:*
• Текст жіберсеңіз — жауап мәтінін аласыз.
• Дауысты хабарлама жіберсеңіз — дауыспен жауап аласыз (тану → AI → синтез).

Сұрақтарыңызды қазақ тілінде жіберіңіз.`

const helpText = `*Командалар:*
/start — қош келдіңіз хабарламасы
/help — осы көмек

*Қызметтер:*
• Текст сұрақ → мәтіндік жауап
• Дауысты хабарлама → дауысты жауап (STT + AI + TTS)

Барлық жауаптар қазақ тілінде беріледі.`
