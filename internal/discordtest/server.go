// Package discordtest provides fake discord REST API backing real discordgo sessions in command tests
package discordtest

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// Sent is a message posted through fake API
type Sent struct {
	ChannelID string
	Content   string
	Embed     *discordgo.MessageEmbed
	Files     []string
}

// Server records messages, reactions and typing indicators, and serves registered channels
type Server struct {
	*httptest.Server
	Session   *discordgo.Session
	channels  map[string]*discordgo.Channel
	sent      []Sent
	reactions []string
	mu        sync.Mutex
	typing    int
}

type rewrite struct {
	target *url.URL
}

func (rw *rewrite) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rw.target.Scheme
	req.URL.Host = rw.target.Host
	req.Host = ""

	return http.DefaultTransport.RoundTrip(req)
}

// New starts fake API and returns it with session routed to it
func New(t *testing.T) *Server {
	t.Helper()

	srv := &Server{
		channels: make(map[string]*discordgo.Channel),
	}

	r := chi.NewRouter()
	r.Get("/api/{version}/channels/{channelID}", srv.getChannel)
	r.Post("/api/{version}/channels/{channelID}/messages", srv.postMessage)
	r.Post("/api/{version}/channels/{channelID}/typing", srv.postTyping)
	r.Put("/api/{version}/channels/{channelID}/messages/{messageID}/reactions/{emoji}/@me", srv.putReaction)

	srv.Server = httptest.NewServer(r)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	srv.Session, err = discordgo.New("Bot test")
	require.NoError(t, err)

	srv.Session.Client = &http.Client{Transport: &rewrite{target: target}}

	return srv
}

// AddChannel makes channel available through REST lookup
func (srv *Server) AddChannel(ch *discordgo.Channel) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.channels[ch.ID] = ch
}

// Sent returns posted messages in order
func (srv *Server) Sent() []Sent {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return append([]Sent(nil), srv.sent...)
}

// Reactions returns added reaction emojis in order
func (srv *Server) Reactions() []string {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return append([]string(nil), srv.reactions...)
}

// Typing returns number of typing indicators sent
func (srv *Server) Typing() int {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.typing
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (srv *Server) getChannel(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	ch, ok := srv.channels[chi.URLParam(r, "channelID")]
	srv.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "Unknown Channel", "code": 10003})

		return
	}

	writeJSON(w, http.StatusOK, ch)
}

func (srv *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelID")

	var (
		data  discordgo.MessageSend
		files []string
	)

	mediatype, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if strings.HasPrefix(mediatype, "multipart/") {
		err := r.ParseMultipartForm(8 << 20)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": err.Error()})

			return
		}

		err = json.Unmarshal([]byte(r.FormValue("payload_json")), &data)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": err.Error()})

			return
		}

		for _, fhs := range r.MultipartForm.File {
			for _, fh := range fhs {
				files = append(files, fh.Filename)
			}
		}
	} else if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": err.Error()})

		return
	}

	srv.mu.Lock()
	srv.sent = append(srv.sent, Sent{
		ChannelID: channelID,
		Content:   data.Content,
		Embed:     data.Embed,
		Files:     files,
	})
	id := fmt.Sprintf("reply%d", len(srv.sent))
	srv.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "channel_id": channelID})
}

func (srv *Server) postTyping(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	srv.typing++
	srv.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) putReaction(w http.ResponseWriter, r *http.Request) {
	emoji, err := url.PathUnescape(chi.URLParam(r, "emoji"))
	if err != nil {
		emoji = chi.URLParam(r, "emoji")
	}

	srv.mu.Lock()
	srv.reactions = append(srv.reactions, emoji)
	srv.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}
