// Package backend bridges the ledger and its surroundings: it drains committed
// events into the index database and dispatches submitted transaction calldata
// onto the ledger.
package backend

import (
	"time"

	"designmarket/ledger"
	"designmarket/log"
	"designmarket/model"
	"designmarket/service"
)

// queue size before the ledger write path starts blocking on the indexer
const feedBuffer = 4096

// Backend owns the event feed between the ledger and the index.
type Backend struct {
	feed chan ledger.Event
}

func New() *Backend {
	return &Backend{feed: make(chan ledger.Event, feedBuffer)}
}

// Sink is handed to ledger.NewLedger; it is called with the ledger mutex held
// and must not call back into the ledger.
func (b *Backend) Sink(ev ledger.Event) {
	b.feed <- ev
}

// Run starts the index loop. Events apply in commit order; a failed insert is
// retried until the database recovers, so the index never skips a sequence.
func (b *Backend) Run(interval time.Duration) {
	go func() {
		for ev := range b.feed {
			for {
				err := service.Insert(ev, mintRecord(ev))
				if err == nil {
					break
				}
				log.Errorf("event %v index error, retrying: %v", ev.Seq, err)
				time.Sleep(interval)
			}
		}
	}()
}

// mintRecord builds the design row for mint events from the creation record
// the event carries.
func mintRecord(ev ledger.Event) *model.Design {
	if ev.Type != ledger.EventTransfer || ev.From != ledger.ZeroAddress {
		return nil
	}
	return &model.Design{
		TokenID:     ev.TokenID,
		Registry:    string(ev.Registry),
		Owner:       string(ev.To),
		Creator:     string(ev.To),
		CreatorName: ev.CreatorName,
		Description: ev.Description,
		TokenURI:    ev.TokenURI,
		Timestamp:   ev.Timestamp,
		TxHash:      string(ev.TxHash),
	}
}
