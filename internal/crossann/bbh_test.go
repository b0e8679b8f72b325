package crossann

import (
	"reflect"
	"testing"
)

func Test_bestHits(t *testing.T) {
	tests := []struct {
		name string
		hits []Hit
		want map[string]string // query to expected best subject
	}{
		{
			"highest bitscore wins",
			[]Hit{
				{Query: "a", Subject: "x", BitScore: 50},
				{Query: "a", Subject: "y", BitScore: 220},
				{Query: "a", Subject: "z", BitScore: 100},
			},
			map[string]string{"a": "y"},
		},
		{
			"equal bitscore breaks on identity",
			[]Hit{
				{Query: "a", Subject: "x", BitScore: 100, IdentityPct: 91},
				{Query: "a", Subject: "y", BitScore: 100, IdentityPct: 99},
			},
			map[string]string{"a": "y"},
		},
		{
			"equal bitscore and identity breaks on alignment length",
			[]Hit{
				{Query: "a", Subject: "x", BitScore: 100, IdentityPct: 95, Length: 80},
				{Query: "a", Subject: "y", BitScore: 100, IdentityPct: 95, Length: 120},
			},
			map[string]string{"a": "y"},
		},
		{
			"full tie keeps the first hit seen",
			[]Hit{
				{Query: "a", Subject: "x", BitScore: 100, IdentityPct: 95, Length: 80},
				{Query: "a", Subject: "y", BitScore: 100, IdentityPct: 95, Length: 80},
			},
			map[string]string{"a": "x"},
		},
		{
			"one best hit per query",
			[]Hit{
				{Query: "a", Subject: "x", BitScore: 100},
				{Query: "b", Subject: "x", BitScore: 90},
			},
			map[string]string{"a": "x", "b": "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := map[string]string{}
			for q, h := range bestHits(tt.hits) {
				got[q] = h.Subject
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("bestHits() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Reciprocal(t *testing.T) {
	type args struct {
		fwd []Hit
		rev []Hit
	}
	tests := []struct {
		name string
		args args
		want []BBHPair
	}{
		{
			"mutual best hits pair up",
			args{
				fwd: []Hit{{Query: "a1", Subject: "b1", BitScore: 200}},
				rev: []Hit{{Query: "b1", Subject: "a1", BitScore: 180}},
			},
			[]BBHPair{{ID1: "a1", ID2: "b1", Hit: Hit{Query: "a1", Subject: "b1", BitScore: 200}}},
		},
		{
			"one-sided match is dropped",
			args{
				// a1's best hit is b1, but b1 prefers a2
				fwd: []Hit{{Query: "a1", Subject: "b1", BitScore: 200}},
				rev: []Hit{{Query: "b1", Subject: "a2", BitScore: 300}},
			},
			nil,
		},
		{
			"no reverse hit means no pair",
			args{
				fwd: []Hit{{Query: "a1", Subject: "b1", BitScore: 200}},
				rev: nil,
			},
			nil,
		},
		{
			"paralog loses to the reciprocal partner",
			args{
				fwd: []Hit{
					{Query: "a1", Subject: "b1", BitScore: 300},
					{Query: "a2", Subject: "b1", BitScore: 250},
				},
				rev: []Hit{{Query: "b1", Subject: "a1", BitScore: 280}},
			},
			[]BBHPair{{ID1: "a1", ID2: "b1", Hit: Hit{Query: "a1", Subject: "b1", BitScore: 300}}},
		},
		{
			"pairs are sorted by the first table's id",
			args{
				fwd: []Hit{
					{Query: "a2", Subject: "b2", BitScore: 100},
					{Query: "a1", Subject: "b1", BitScore: 100},
				},
				rev: []Hit{
					{Query: "b1", Subject: "a1", BitScore: 100},
					{Query: "b2", Subject: "a2", BitScore: 100},
				},
			},
			[]BBHPair{
				{ID1: "a1", ID2: "b1", Hit: Hit{Query: "a1", Subject: "b1", BitScore: 100}},
				{ID1: "a2", ID2: "b2", Hit: Hit{Query: "a2", Subject: "b2", BitScore: 100}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reciprocal(tt.args.fwd, tt.args.rev); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Reciprocal() = %v, want %v", got, tt.want)
			}
		})
	}
}

// no identifier may show up in more than one pair, on either side
func Test_Reciprocal_oneToOne(t *testing.T) {
	fwd := []Hit{
		{Query: "a1", Subject: "b1", BitScore: 300},
		{Query: "a1", Subject: "b2", BitScore: 200},
		{Query: "a2", Subject: "b1", BitScore: 250},
		{Query: "a2", Subject: "b2", BitScore: 240},
		{Query: "a3", Subject: "b3", BitScore: 500},
	}
	rev := []Hit{
		{Query: "b1", Subject: "a1", BitScore: 290},
		{Query: "b2", Subject: "a2", BitScore: 230},
		{Query: "b3", Subject: "a3", BitScore: 480},
	}

	pairs := Reciprocal(fwd, rev)

	seen1 := map[string]bool{}
	seen2 := map[string]bool{}
	for _, p := range pairs {
		if seen1[p.ID1] {
			t.Errorf("id %q appears in more than one pair", p.ID1)
		}
		if seen2[p.ID2] {
			t.Errorf("id %q appears in more than one pair", p.ID2)
		}
		seen1[p.ID1] = true
		seen2[p.ID2] = true
	}

	// a2's best hit is b1, which prefers a1, so only (a1,b1) and (a3,b3) pair
	if len(pairs) != 2 {
		t.Errorf("got %d pairs, want 2: %v", len(pairs), pairs)
	}
}
