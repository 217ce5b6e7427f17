package core

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

type mockedResultStream struct {
	max     int
	current int
	sleep   time.Duration
}

func newMockedResultStream(maxRows int, sleep time.Duration) *mockedResultStream {
	return &mockedResultStream{
		max:   maxRows,
		sleep: sleep,
	}
}

func (mir *mockedResultStream) Meta() *Meta {
	return &Meta{SchemaType: SchemaLess}
}

func (mir *mockedResultStream) Header() Header {
	return Header{"kind", "result"}
}

func (mir *mockedResultStream) Next() (Row, error) {
	if mir.current < mir.max {
		time.Sleep(mir.sleep)

		num := mir.current
		mir.current += 1
		return Row{num, strconv.Itoa(num)}, nil
	}

	return nil, errors.New("no next row")
}

func (mir *mockedResultStream) HasNext() bool {
	return mir.current < mir.max
}

func (mir *mockedResultStream) Close() {}

func (mir *mockedResultStream) Range(from int, to int) []Row {
	var rows []Row

	for i := from; i < to; i++ {
		rows = append(rows, Row{i, strconv.Itoa(i)})
	}
	return rows
}

func TestResultRows(t *testing.T) {
	result := new(Result)

	numOfRows := 10
	stream := newMockedResultStream(numOfRows, 0)

	err := result.SetIter(stream, nil)
	assert.NilError(t, err)

	// refill in the background with a slow stream
	refillSlowly := func() {
		result.Wipe()
		started := make(chan struct{})
		go func() {
			_ = result.SetIter(newMockedResultStream(numOfRows, 50*time.Millisecond), func() { close(started) })
		}()
		<-started
	}

	type testCase struct {
		name          string
		from          int
		to            int
		before        func()
		expectedRows  []Row
		expectedError error
	}

	testCases := []testCase{
		{
			name:         "get all",
			from:         0,
			to:           -1,
			expectedRows: stream.Range(0, numOfRows),
		},
		{
			name:         "get basic range",
			from:         0,
			to:           3,
			expectedRows: stream.Range(0, 3),
		},
		{
			name:         "get last 2",
			from:         -3,
			to:           -1,
			expectedRows: stream.Range(numOfRows-2, numOfRows),
		},
		{
			name:         "get only one",
			from:         0,
			to:           1,
			expectedRows: stream.Range(0, 1),
		},
		{
			name:         "range past the end is clamped",
			from:         8,
			to:           20,
			expectedRows: stream.Range(8, numOfRows),
		},
		{
			name:          "invalid range",
			from:          5,
			to:            1,
			expectedError: ErrInvalidRange(5, 1),
		},
		{
			name:          "invalid range (even if 10 can be higher than -1, its undefined and should fail)",
			from:          -5,
			to:            10,
			expectedError: ErrInvalidRange(-5, 10),
		},
		{
			name:         "wait for available index",
			from:         0,
			to:           3,
			expectedRows: stream.Range(0, 3),
			before:       refillSlowly,
		},
		{
			name:         "wait for all to be drained",
			from:         0,
			to:           -1,
			expectedRows: stream.Range(0, numOfRows),
			before:       refillSlowly,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.before != nil {
				tc.before()
			}

			rows, err := result.Rows(tc.from, tc.to)
			if tc.expectedError != nil {
				assert.Error(t, err, tc.expectedError.Error())
				return
			}

			assert.NilError(t, err)
			assert.DeepEqual(t, rows, tc.expectedRows)
		})
	}
}

func TestResultFormat(t *testing.T) {
	result := new(Result)
	assert.Assert(t, result.IsEmpty())

	err := result.SetIter(newMockedResultStream(4, 0), nil)
	assert.NilError(t, err)
	assert.Equal(t, result.Len(), 4)

	var gotOpts *FormatterOptions
	formatter := formatterFunc(func(header Header, rows []Row, opts *FormatterOptions) ([]byte, error) {
		gotOpts = opts
		return []byte(strconv.Itoa(len(rows))), nil
	})

	out, err := result.Format(formatter, -3, -1)
	assert.NilError(t, err)
	assert.Equal(t, string(out), "2")
	assert.Equal(t, gotOpts.ChunkStart, 2)
	assert.Equal(t, gotOpts.SchemaType, SchemaLess)
}

type formatterFunc func(Header, []Row, *FormatterOptions) ([]byte, error)

func (f formatterFunc) Format(header Header, rows []Row, opts *FormatterOptions) ([]byte, error) {
	return f(header, rows, opts)
}
