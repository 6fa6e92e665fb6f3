package pkg

import "testing"

func TestName_IsSet(t *testing.T) {
	if Name != "rinha" {
		t.Errorf("expected module name %q, got %q", "rinha", Name)
	}
}

func TestVersion_IsEmbedded(t *testing.T) {
	if Version == "" {
		t.Error("expected Version to be embedded from the VERSION file")
	}
}

func TestAuthor_NonEmpty(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("expected at least one author entry")
	}
	if Author[0].Name == "" || Author[0].Email == "" {
		t.Error("expected the author entry to have both a name and an email")
	}
}
