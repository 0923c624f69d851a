package chat

import "strings"

// Fixed user-visible strings. Failure templates embed the underlying
// collaborator error message; nothing else about them varies.
const (
	// WelcomeText greets the user when a surface opens the conversation.
	WelcomeText = "Selamat datang di Robot AI serbaguna! Buka menu perintah untuk melihat daftar perintah."

	pongText = "Pong!"

	ipTemplate      = "Alamat IP publik Anda adalah: %s"
	ipErrorTemplate = "Maaf, gagal mengambil alamat IP: %s"

	aiErrorTemplate = "Maaf, terjadi kesalahan saat menghubungi AI: %s"

	mediaPendingText     = "Sedang memproses video TikTok..."
	mediaErrorTemplate   = "Maaf, gagal mengunduh video TikTok: %s"
	mediaNoSourceMessage = "tidak ada tautan unduhan yang tersedia"

	unknownTemplate = "Perintah '%s' tidak dikenali."

	// streamSentinel is shown while a streaming reply has not yet produced
	// its first fragment.
	streamSentinel = "▌"
)

func hasErrorPrefix(text string) bool {
	return strings.HasPrefix(text, "Maaf, ") || strings.HasPrefix(text, "Perintah '")
}
