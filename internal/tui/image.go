package tui

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// TerminalImageProtocol represents the image protocol supported by the terminal
type TerminalImageProtocol int

// Terminal image protocol types
const (
	// ProtocolNone indicates no image protocol support
	ProtocolNone TerminalImageProtocol = iota
	// ProtocolKitty indicates Kitty terminal graphics protocol
	ProtocolKitty
	// ProtocolITerm2 indicates iTerm2 inline images protocol
	ProtocolITerm2
)

// DetectImageProtocol detects which terminal image protocol is supported.
func DetectImageProtocol() TerminalImageProtocol {
	termProgram := os.Getenv("TERM_PROGRAM")
	term := os.Getenv("TERM")

	if strings.Contains(term, "kitty") {
		return ProtocolKitty
	}
	// Ghostty speaks the Kitty protocol.
	if termProgram == "ghostty" {
		return ProtocolKitty
	}
	if termProgram == "iTerm.app" {
		return ProtocolITerm2
	}
	return ProtocolNone
}

// RenderInlineImage renders a local image file inline using the terminal's
// protocol. Returns the escape sequences, or empty string on error.
func RenderInlineImage(imagePath string, protocol TerminalImageProtocol) string {
	if protocol == ProtocolNone {
		return ""
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return ""
	}
	return RenderInlineImageBytes(data, protocol)
}

// RenderInlineImageBytes renders image data inline using the terminal's
// protocol. Used for covers already fetched from the image host.
func RenderInlineImageBytes(data []byte, protocol TerminalImageProtocol) string {
	switch protocol {
	case ProtocolKitty:
		return renderKittyImage(data)
	case ProtocolITerm2:
		return renderITerm2Image(data)
	}
	return ""
}

// renderKittyImage uses Kitty's graphics protocol
// Format: \x1b_Ga=T,f=100,t=f;<base64>\x1b\\
func renderKittyImage(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("\x1b_Ga=T,f=100,t=f;%s\x1b\\", encoded)
}

// renderITerm2Image uses iTerm2's inline images protocol
// Format: \x1b]1337;File=inline=1:<base64>\x07
func renderITerm2Image(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("\x1b]1337;File=inline=1;width=30px:%s\x07", encoded)
}
