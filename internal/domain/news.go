package domain

// Sentiment clasifica el impacto esperado de una noticia sobre el precio.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positivo"
	SentimentNegative Sentiment = "Negativo"
	SentimentNeutral  Sentiment = "Neutro"
)

// NewsItem es una noticia del radar, opcionalmente ligada a un mercado.
type NewsItem struct {
	ID              string
	Title           string
	Source          string
	TimeAgo         string
	Sentiment       Sentiment
	RelatedMarketID string
}
