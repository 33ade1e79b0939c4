package cmd

import "testing"

func TestLookupScenarioKnowsBuiltInNames(t *testing.T) {
	for _, name := range []string{"sum-equals-seven", "equals-42", "increment"} {
		if _, err := lookupScenario(name); err != nil {
			t.Fatalf("lookupScenario(%q) = %v, want no error", name, err)
		}
	}
}

func TestLookupScenarioRejectsUnknownNames(t *testing.T) {
	if _, err := lookupScenario("no-such-scenario"); err == nil {
		t.Fatal("expected an error for an unknown scenario name")
	}
}

func TestFindScenariosHaveAQueryNotATarget(t *testing.T) {
	for _, name := range []string{"sum-equals-seven", "equals-42"} {
		s, err := lookupScenario(name)
		if err != nil {
			t.Fatal(err)
		}
		if s.query == nil {
			t.Fatalf("scenario %q should carry a query", name)
		}
		if s.target != nil {
			t.Fatalf("scenario %q should not carry a transform target", name)
		}
	}
}

func TestTransformScenariosHaveATargetNotAQuery(t *testing.T) {
	s, err := lookupScenario("increment")
	if err != nil {
		t.Fatal(err)
	}
	if s.target == nil {
		t.Fatal("increment scenario should carry a transform target")
	}
	if s.query != nil {
		t.Fatal("increment scenario should not carry a find query")
	}
	if s.sameTyp == nil {
		t.Fatal("increment scenario should carry an endpoint type")
	}
}
