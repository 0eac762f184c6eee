package diff

import (
	"testing"
)

func TestTrackLines(t *testing.T) {
	tests := []struct {
		name  string
		patch string
		mode  LineMode
		want  []Line
	}{
		{
			name: "added lines numbered from hunk start",
			patch: `--- a/main.go
+++ b/main.go
@@ -10,3 +10,5 @@ func main() {
 	existing1()
 	existing2()
+	newCall1()
+	newCall2()
 	existing3()
`,
			mode: Added,
			want: []Line{
				{Number: 12, Content: "\tnewCall1()"},
				{Number: 13, Content: "\tnewCall2()"},
			},
		},
		{
			name: "removed line recorded at current counter",
			patch: `--- a/config.py
+++ b/config.py
@@ -5,3 +5,3 @@
 import os
-DEBUG = True
+DEBUG = False
 TIMEOUT = 30
`,
			mode: Removed,
			want: []Line{
				{Number: 6, Content: "DEBUG = True"},
			},
		},
		{
			name: "replacement added line shares the freed slot",
			patch: `--- a/config.py
+++ b/config.py
@@ -5,3 +5,3 @@
 import os
-DEBUG = True
+DEBUG = False
 TIMEOUT = 30
`,
			mode: Added,
			want: []Line{
				{Number: 6, Content: "DEBUG = False"},
			},
		},
		{
			name: "deletion then context does not shift later additions",
			patch: `@@ -8,3 +8,3 @@
 keep one
-drop this
 keep two
+added after
`,
			mode: Added,
			want: []Line{
				{Number: 10, Content: "added after"},
			},
		},
		{
			name: "counter restarts at each hunk header",
			patch: `@@ -1,2 +1,3 @@
 a
+first addition
 b
@@ -40,1 +41,2 @@
 c
+second addition
`,
			mode: Added,
			want: []Line{
				{Number: 2, Content: "first addition"},
				{Number: 42, Content: "second addition"},
			},
		},
		{
			name: "no hunk headers yields empty result",
			patch: `--- a/x.txt
+++ b/x.txt
+not governed by any hunk
`,
			mode: Added,
			want: []Line{},
		},
		{
			name: "only removed lines leaves added empty",
			patch: `@@ -3,2 +3,0 @@
-gone one
-gone two
`,
			mode: Added,
			want: []Line{},
		},
		{
			name: "consecutive removals share one counter value",
			patch: `@@ -3,2 +3,0 @@
-gone one
-gone two
`,
			mode: Removed,
			want: []Line{
				{Number: 3, Content: "gone one"},
				{Number: 3, Content: "gone two"},
			},
		},
		{
			name: "no newline marker is ignored",
			patch: `@@ -1,2 +1,2 @@
 ctx
-old last
+new last
\ No newline at end of file
`,
			mode: Added,
			want: []Line{
				{Number: 2, Content: "new last"},
			},
		},
		{
			name: "hunk header without counts",
			patch: `@@ -3 +7 @@
+single
`,
			mode: Added,
			want: []Line{
				{Number: 7, Content: "single"},
			},
		},
		{
			name: "malformed hunk header never activates the counter",
			patch: `@@ not a real header @@
+orphan line
`,
			mode: Added,
			want: []Line{},
		},
		{
			name: "binary marker yields empty result",
			patch: `Binary files a/logo.png and b/logo.png differ
`,
			mode: Added,
			want: []Line{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrackLines(tt.patch, tt.mode)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTrackLinesNumbersNonDecreasing(t *testing.T) {
	patch := `--- a/big.js
+++ b/big.js
@@ -1,4 +1,5 @@
+top()
 one
+mid()
 two
-dropped()
 three
@@ -30,2 +31,4 @@
 alpha
+late1()
+late2()
 beta
`
	added := TrackLines(patch, Added)
	if len(added) != 4 {
		t.Fatalf("got %d added lines, want 4", len(added))
	}
	for i := 1; i < len(added); i++ {
		if added[i].Number < added[i-1].Number {
			t.Errorf("line numbers decrease at index %d: %d after %d", i, added[i].Number, added[i-1].Number)
		}
	}
	if added[2].Number != 32 {
		t.Errorf("second hunk restarts at %d, want 32", added[2].Number)
	}
}
