package exports

import "context"

// Literal results of the placeholder exports. They stand in until the host
// assigns real behaviour.
const (
	HelloResponse = "Hello, World! From JavaScript library!"
	DummyContent  = "Hurr durr some dummy content"
)

// Export names.
const (
	NameSendRequest     = "sendRequest"
	NameGetResponse     = "getResponse"
	NameGetOverviewData = "getOverviewData"
	NameGetContent      = "getContent"
)

// Sender is the request primitive behind sendRequest.
type Sender interface {
	Send(method, url, payload string) string
}

// GetResponse is a placeholder returning HelloResponse.
func GetResponse() string { return HelloResponse }

// GetOverviewData is a placeholder with no result and no effect.
func GetOverviewData(year int) {}

// GetContent is a placeholder returning DummyContent for any date.
func GetContent(year, month, day int) string { return DummyContent }

// NewDefault builds the table exposed to the host: sendRequest bound to
// sender plus the placeholder accessors.
func NewDefault(sender Sender) *Table {
	t := NewTable()
	for _, e := range defaultExports(sender) {
		// Every default export has a name and a function.
		_ = t.Register(e)
	}
	return t
}

func defaultExports(sender Sender) []Export {
	return []Export{
		{
			Name: NameSendRequest,
			Params: []Param{
				{Name: "method", Kind: KindString},
				{Name: "url", Kind: KindString},
				{Name: "payload", Kind: KindString},
			},
			Fn: func(_ context.Context, args []any) (any, error) {
				return sender.Send(args[0].(string), args[1].(string), args[2].(string)), nil
			},
		},
		{
			Name: NameGetResponse,
			Fn: func(context.Context, []any) (any, error) {
				return GetResponse(), nil
			},
		},
		{
			Name:   NameGetOverviewData,
			Params: []Param{{Name: "year", Kind: KindInt}},
			Void:   true,
			Fn: func(_ context.Context, args []any) (any, error) {
				GetOverviewData(args[0].(int))
				return nil, nil
			},
		},
		{
			Name: NameGetContent,
			Params: []Param{
				{Name: "year", Kind: KindInt},
				{Name: "month", Kind: KindInt},
				{Name: "day", Kind: KindInt},
			},
			Fn: func(_ context.Context, args []any) (any, error) {
				return GetContent(args[0].(int), args[1].(int), args[2].(int)), nil
			},
		},
	}
}
