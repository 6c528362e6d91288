package aggregator

type accountKey struct {
	subscriptionID string
	accountName    string
}
