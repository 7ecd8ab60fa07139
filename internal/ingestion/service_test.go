package ingestion

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wakala/banksync/internal/bank"
	"github.com/wakala/banksync/internal/reconciliation"
)

type countingSink struct {
	saved int
}

func (c *countingSink) Save(_ context.Context, res *reconciliation.Result) (int, error) {
	c.saved++
	return len(res.Booked), nil
}

func (c *countingSink) LastPayloadHash(context.Context, string) (string, error) {
	return "", nil
}

func TestIngest(t *testing.T) {
	sink := &countingSink{}
	log := zerolog.New(io.Discard)
	recon := reconciliation.NewService(NewDirSource(t.TempDir()), bank.DefaultRegistry(), sink, log, 1)
	svc := NewService(recon, log)

	res, err := svc.Ingest(context.Background(), []byte(sampleJSON))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.Run.Adapter != "ing_de" {
		t.Errorf("adapter = %q", res.Run.Adapter)
	}
	// 359687 - (-400)
	if res.StartingBalance != 360087 {
		t.Errorf("starting balance got=%d want=360087", res.StartingBalance)
	}
	if sink.saved != 1 {
		t.Errorf("saved = %d", sink.saved)
	}

	if _, err := svc.Ingest(context.Background(), []byte(`{"account": {}}`)); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("missing account id err = %v", err)
	}
}
