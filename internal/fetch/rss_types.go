package fetch

// rssDoc — корневая структура RSS-ленты.
type rssDoc struct {
	Channel rssChannel `xml:"channel"`
}

// rssChannel — RSS-канал, содержащий список материалов.
type rssChannel struct {
	Items []rssItem `xml:"item"`
}

// rssItem описывает один материал в RSS-ленте.
type rssItem struct {
	// Title — заголовок материала.
	Title string `xml:"title"`
	// Link — ссылка на материал. Может быть пустым/мусорным у некоторых
	// издателей, тогда guid (если он — полноценный URL) идёт как fallback.
	Link string `xml:"link"`
	// GUID — «перманентный» идентификатор записи. У некоторых источников
	// содержит URL и может использоваться как Link, даже если isPermaLink="false".
	GUID rssGUID `xml:"guid"`
	// PubDate — дата публикации в строковом виде.
	PubDate string `xml:"pubDate"`
	// Description — краткое описание/тизер. Часто приходит внутри CDATA и с HTML.
	Description string `xml:"description"`
	// Creator — dc:creator, автор материала.
	Creator string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	// ContentHTML — расширение content:encoded с полным HTML-телом.
	ContentHTML string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
	// Enclosures — вложения (изображения, аудио и т.п.).
	Enclosures []rssEnclosure `xml:"enclosure"`
	// MediaContent/MediaThumbs — второй приоритет для обложки.
	MediaContent []rssMedia `xml:"http://search.yahoo.com/mrss/ content"`
	MediaThumbs  []rssMedia `xml:"http://search.yahoo.com/mrss/ thumbnail"`
}

// rssGUID — обёртка над <guid> с атрибутом isPermaLink.
type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// rssEnclosure — описание вложения RSS.
type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr"`
}

// rssMedia — элемент Media RSS (media:content или media:thumbnail).
type rssMedia struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}
