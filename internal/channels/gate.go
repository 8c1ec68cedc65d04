package channels

// Allowed reports whether like command may run in channel.
// Direct messages (empty guildID) and guilds without configured channels are unrestricted.
func (store *Store) Allowed(guildID, channelID string) bool {
	if guildID == "" {
		return true
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	s, ok := store.doc.Servers[guildID]
	if !ok || len(s.LikeChannels) == 0 {
		return true
	}

	return indexOf(s.LikeChannels, channelID) >= 0
}

// Add appends channel to guild allow-list. Returns false without writing if already present.
func (store *Store) Add(guildID, channelID string) (added bool, err error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	s := store.server(guildID)

	if indexOf(s.LikeChannels, channelID) >= 0 {
		return false, nil
	}

	s.LikeChannels = append(s.LikeChannels, channelID)

	err = store.save()
	if err != nil {
		s.LikeChannels = s.LikeChannels[:len(s.LikeChannels)-1]

		return false, err
	}

	return true, nil
}

// Remove deletes channel from guild allow-list. Returns false without writing if absent.
func (store *Store) Remove(guildID, channelID string) (removed bool, err error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	s := store.server(guildID)

	i := indexOf(s.LikeChannels, channelID)
	if i < 0 {
		return false, nil
	}

	prev := s.LikeChannels

	s.LikeChannels = append(append([]string{}, prev[:i]...), prev[i+1:]...)

	err = store.save()
	if err != nil {
		s.LikeChannels = prev

		return false, err
	}

	return true, nil
}

// List returns ordered copy of guild allow-list; restricted is false when like is allowed everywhere
func (store *Store) List(guildID string) (channels []string, restricted bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	s, ok := store.doc.Servers[guildID]
	if !ok || len(s.LikeChannels) == 0 {
		return nil, false
	}

	return append([]string{}, s.LikeChannels...), true
}

// server returns guild entry, creating it lazily; caller holds mu
func (store *Store) server(guildID string) *Server {
	s, ok := store.doc.Servers[guildID]
	if !ok {
		s = &Server{LikeChannels: []string{}}
		store.doc.Servers[guildID] = s
	}

	return s
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}

	return -1
}
