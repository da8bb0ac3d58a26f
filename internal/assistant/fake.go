package assistant

import "context"

// FakeSession is a Session for tests. It records the last request and
// replies with canned text.
type FakeSession struct {
	Reply string
	Err   error

	// Last request, for assertions
	Turns     []Turn
	Grounding string
}

var _ Session = (*FakeSession)(nil)

func (f *FakeSession) Send(_ context.Context, turns []Turn, grounding string) (string, error) {
	f.Turns = turns
	f.Grounding = grounding

	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}

func (f *FakeSession) Stream(ctx context.Context, turns []Turn, grounding string) (<-chan string, <-chan error) {
	f.Turns = turns
	f.Grounding = grounding

	chunks := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		if f.Err != nil {
			errs <- f.Err
			return
		}

		// Split the reply so streaming consumers see more than one chunk
		half := len(f.Reply) / 2
		for _, part := range []string{f.Reply[:half], f.Reply[half:]} {
			if part == "" {
				continue
			}
			select {
			case chunks <- part:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return chunks, errs
}
