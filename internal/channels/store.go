// Package channels provides per-server channel allow-list persisted in a JSON file
package channels

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Server holds channel restrictions for one guild
type Server struct {
	LikeChannels []string `json:"like_channels"`
}

// Document is the persisted file layout
type Document struct {
	Servers map[string]*Server `json:"servers"`
}

// Store keeps allow-lists in memory and writes the whole document on every change
type Store struct {
	log  logrus.FieldLogger
	doc  Document
	path string
	mu   sync.Mutex
}

// Open loads store from path. Missing or corrupt file is replaced by an empty document,
// error is returned only when the empty document could not be written.
func Open(path string, log logrus.FieldLogger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	store := &Store{
		log:  log,
		path: path,
	}

	doc, err := load(path)
	if err == nil {
		store.doc = *doc

		return store, nil
	}

	if !os.IsNotExist(errors.Cause(err)) {
		log.WithError(err).WithField("path", path).Warn("Channel config is corrupt, resetting")
	}

	store.doc = Document{Servers: make(map[string]*Server)}

	err = store.save()
	if err != nil {
		return nil, err
	}

	return store, nil
}

func load(path string) (*Document, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading channel config")
	}

	doc := &Document{}

	err = json.Unmarshal(bs, doc)
	if err != nil {
		return nil, errors.Wrap(err, "decoding channel config")
	}

	if doc.Servers == nil {
		doc.Servers = make(map[string]*Server)
	}

	for id, s := range doc.Servers {
		if s == nil {
			s = &Server{}
			doc.Servers[id] = s
		}

		s.LikeChannels = dedup(s.LikeChannels)
	}

	return doc, nil
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}

		res = append(res, id)
	}

	return res
}

// save writes document to a temporary file in the same directory and renames it over path
func (store *Store) save() (err error) {
	bs, err := json.MarshalIndent(&store.doc, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encoding channel config")
	}

	dir, base := filepath.Split(store.path)
	if dir == "" {
		dir = "."
	}

	f, err := ioutil.TempFile(dir, base+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temporary channel config")
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	_, err = f.Write(bs)
	if err != nil {
		return errors.Wrap(err, "writing temporary channel config")
	}

	err = f.Sync()
	if err != nil {
		return errors.Wrap(err, "syncing temporary channel config")
	}

	err = f.Close()
	if err != nil {
		return errors.Wrap(err, "closing temporary channel config")
	}

	err = os.Rename(f.Name(), store.path)
	if err != nil {
		return errors.Wrap(err, "replacing channel config")
	}

	return nil
}

// Path returns location of persisted document
func (store *Store) Path() string {
	return store.path
}
