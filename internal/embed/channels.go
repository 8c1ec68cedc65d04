package embed

// ChannelAdded message for channel newly allowed
func ChannelAdded(channelID string) string {
	return "✅ " + Mention(channelID) + " has been added to allowed like channels."
}

// ChannelAlreadyAllowed message for channel already in allow-list
func ChannelAlreadyAllowed(channelID string) string {
	return "⚠️ " + Mention(channelID) + " is already allowed for like."
}

// ChannelRemoved message for channel removed from allow-list
func ChannelRemoved(channelID string) string {
	return "❌ " + Mention(channelID) + " has been removed from allowed like channels."
}

// ChannelNotListed message for channel absent from allow-list
func ChannelNotListed(channelID string) string {
	return "⚠️ " + Mention(channelID) + " was not in the list of allowed channels."
}

// ChannelList message listing allowed channels
func ChannelList(channels []string, restricted bool) string {
	if !restricted {
		return "ℹ️ No channels are restricted, like is allowed everywhere."
	}

	return "✅ like is allowed in the following channels:\n" + Mentions(channels, "\n")
}
