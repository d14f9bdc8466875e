package models

import (
	"github.com/cuongccna/tradingjournalai-sub000/pkg/util"
)

// MaxSymbolsPerRequest bounds one aggregation request.
const MaxSymbolsPerRequest = 50

// MarketQuery is bound from /market/portfolio-data, /market/alerts and
// /market/binance-data query strings.
type MarketQuery struct {
	UserID     string   `query:"userId" validate:"max=128"`
	Symbols    string   `query:"symbols" validate:"required"`
	SymbolList []string `name:"symbols" validate:"min=1,max=50,dive,min=1,max=20"`
}

// Normalize splits the comma separated symbol list into unique uppercase tickers.
func (q *MarketQuery) Normalize() {
	q.SymbolList = util.SplitList(q.Symbols, NormalizeSymbol)
}

type SymbolQuery struct {
	Symbol string `param:"symbol" validate:"required,max=20"`
}

func (q *SymbolQuery) Normalize() {
	q.Symbol = NormalizeSymbol(q.Symbol)
}

// NewsQuery is shared by the news endpoints; unset fields are ignored.
type NewsQuery struct {
	UserID   string `query:"userId" validate:"max=128"`
	Limit    int    `query:"limit" default:"20" validate:"gte=1,lte=100"`
	Category string `param:"category"`
	Ticker   string `param:"ticker" validate:"max=20"`
	Q        string `query:"q" validate:"max=200"`
}

func (q *NewsQuery) Normalize() {
	q.Ticker = NormalizeSymbol(q.Ticker)
}
