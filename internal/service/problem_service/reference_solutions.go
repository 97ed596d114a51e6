package problem_service

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/tcp_snm/leetlab/internal/judge"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReferenceSolutions is the author supplied language -> source mapping.
// It travels as a json object but keeps the order the author wrote it in,
// which is the order languages are verified in.
type ReferenceSolutions []judge.ReferenceSolution

func (rs *ReferenceSolutions) UnmarshalJSON(data []byte) error {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.Skip()
		*rs = nil
		return iter.Error
	}
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return fmt.Errorf("reference_solutions must be an object of language to source code")
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	solutions := make(ReferenceSolutions, 0)
	var decodeErr error
	iter.ReadObjectCB(func(it *jsoniter.Iterator, language string) bool {
		if !seen.Add(language) {
			decodeErr = fmt.Errorf("duplicate reference solution for language %s", language)
			return false
		}
		if it.WhatIsNext() != jsoniter.StringValue {
			decodeErr = fmt.Errorf("reference solution for language %s must be a string", language)
			return false
		}
		solutions = append(solutions, judge.ReferenceSolution{
			Language:   language,
			SourceCode: it.ReadString(),
		})
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}
	if iter.Error != nil {
		return fmt.Errorf("cannot decode reference_solutions, %w", iter.Error)
	}

	*rs = solutions
	return nil
}

func (rs ReferenceSolutions) MarshalJSON() ([]byte, error) {
	if rs == nil {
		return []byte("null"), nil
	}
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, sol := range rs {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(sol.Language)
		stream.WriteString(sol.SourceCode)
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}

	// the stream buffer is reused once returned
	out := make([]byte, stream.Buffered())
	copy(out, stream.Buffer())
	return out, nil
}
