package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/submersibletoaster/acctocr"
	"github.com/submersibletoaster/acctocr/examine"
)

// BlockError - a block that could not be parsed
type BlockError struct {
	Index int
	Line  int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d at line %d: %v", e.Index, e.Line, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// Outcome - a block and what the parser made of it
type Outcome struct {
	Block  Block
	Result acctocr.Result
}

// outcomeBuff - Sortable collection of Outcome; results are emitted in
// input order as a stream
type outcomeBuff []Outcome

func (o outcomeBuff) Len() int {
	return len(o)
}
func (o outcomeBuff) Less(i, j int) bool {
	return o[i].Block.Index < o[j].Block.Index
}
func (o outcomeBuff) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
}

// Pipeline parses blocks from a reader with a pool of workers.
type Pipeline struct {
	Parser  *acctocr.Parser
	Workers int
	// OnResult, when set, is called from a worker after each block is
	// parsed, in completion order.
	OnResult func(Outcome)
}

// job - a block read from the input and validated for parsing
type job struct {
	block Block
	valid *examine.Block
}

// Run parses every block of r and calls emit with the outcomes in input
// order. A malformed block stops the reading: every block before it is
// still emitted, then it is returned as a *BlockError. A trailing partial
// block is logged and ignored.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, emit func(Outcome) error) error {
	parser := p.Parser
	if parser == nil {
		parser = acctocr.NewParser()
	}
	n := p.Workers
	if n < 1 {
		n = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job, n)
	mid := make(chan Outcome, n)

	// set by the reader before jobs is closed, read after g.Wait
	var malformed *BlockError

	g.Go(func() error {
		defer close(jobs)
		rd := NewReader(r)
		for {
			b, err := rd.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, ErrIncompleteBlock) {
				log.Warnf("ignoring %v", err)
				return nil
			}
			if err != nil {
				return err
			}
			valid, err := examine.NewBlock(b.Lines)
			if err != nil {
				malformed = &BlockError{Index: b.Index, Line: b.Line, Err: err}
				return nil
			}
			select {
			case jobs <- job{block: b, valid: valid}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	wait := sync.WaitGroup{}
	for i := 0; i < n; i++ {
		wait.Add(1)
		worker := i
		g.Go(func() error {
			defer wait.Done()
			log.Debugf("worker %d started", worker)
			for j := range jobs {
				o := Outcome{Block: j.block, Result: parser.ParseBlock(j.valid)}
				if p.OnResult != nil {
					p.OnResult(o)
				}
				select {
				case mid <- o:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			log.Debugf("worker %d done", worker)
			return nil
		})
	}
	go func() {
		wait.Wait()
		close(mid)
	}()

	g.Go(func() error {
		next := 0
		buffer := make(outcomeBuff, 0)
		for o := range mid {
			buffer = append(buffer, o)
			sort.Sort(buffer)
			for len(buffer) != 0 && buffer[0].Block.Index == next {
				if err := emit(buffer[0]); err != nil {
					return err
				}
				next++
				buffer = buffer[1:]
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if malformed != nil {
		return malformed
	}
	return nil
}
