package handlers

import (
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// HandleQR renders a PNG QR code with the join link for an existing room,
// so the host can pass the code around a table.
func (ctx *Context) HandleQR(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimPrefix(r.URL.Path, "/qr/")
	if code == "" || !ctx.Rooms.Exists(code) {
		http.NotFound(w, r)
		return
	}

	png, err := qrcode.Encode(ctx.PublicURL+"/?room="+code, qrcode.Medium, 256)
	if err != nil {
		ctx.Log.Error().Err(err).Str("room", code).Msg("qr encoding failed")
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleHealth is a liveness probe.
func (ctx *Context) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
