package narration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplain(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "bubble sort",
			req:  Request{Step: "loop", Algorithm: "bubble sort", Difficulty: "beginner"},
			want: "Explaining the step: loop for bubble sort at beginner level.",
		},
		{
			name: "no escaping",
			req:  Request{Step: "<b>swap</b>", Algorithm: "quick %s sort", Difficulty: "\"expert\""},
			want: "Explaining the step: <b>swap</b> for quick %s sort at \"expert\" level.",
		},
		{
			name: "empty fields",
			req:  Request{},
			want: "Explaining the step:  for  at  level.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Explain(tc.req))
		})
	}
}
