package trigger

import "testing"

func newTestClassifier() *Classifier {
	return New(Config{
		NameAliases:     []string{"ai response"},
		IDAliases:       []string{"14155550100"},
		CommandPrefixes: []string{"/bot"},
	})
}

func TestDirectMessageAlwaysAdmitted(t *testing.T) {
	c := newTestClassifier()

	res := c.Classify("hello", false)
	if !res.Admitted {
		t.Fatal("direct message should be admitted")
	}

	if res.Text != "hello" {
		t.Errorf("expected 'hello', got '%s'", res.Text)
	}
}

func TestGroupMessageWithoutTriggerRejected(t *testing.T) {
	c := newTestClassifier()

	res := c.Classify("hello", true)
	if res.Admitted {
		t.Error("group message without mention or command should be rejected")
	}
}

func TestGroupMessageWithNameAlias(t *testing.T) {
	c := newTestClassifier()

	res := c.Classify("@ai response please help", true)
	if !res.Admitted {
		t.Fatal("mentioned group message should be admitted")
	}

	if res.Text != "please help" {
		t.Errorf("expected 'please help', got '%s'", res.Text)
	}
}

func TestGroupMessageWithIDAlias(t *testing.T) {
	c := newTestClassifier()

	res := c.Classify("hey @14155550100 what time is it", true)
	if !res.Admitted {
		t.Fatal("id-mentioned group message should be admitted")
	}

	if res.Text != "hey  what time is it" {
		t.Errorf("unexpected cleaned text: '%s'", res.Text)
	}
}

func TestGroupMessageWithCommandPrefix(t *testing.T) {
	c := newTestClassifier()

	res := c.Classify("/bot what is x", true)
	if !res.Admitted {
		t.Fatal("command message should be admitted")
	}

	if res.Text != "what is x" {
		t.Errorf("expected 'what is x', got '%s'", res.Text)
	}
}

func TestCommandPrefixCaseInsensitive(t *testing.T) {
	c := newTestClassifier()

	res := c.Classify("/BOT what is x", true)
	if !res.Admitted {
		t.Fatal("upper-case command should be admitted")
	}

	if res.Text != "what is x" {
		t.Errorf("expected 'what is x', got '%s'", res.Text)
	}
}

func TestEmptyTextRejected(t *testing.T) {
	c := newTestClassifier()

	if c.Classify("", false).Admitted {
		t.Error("empty direct message should be rejected")
	}

	if c.Classify("   ", true).Admitted {
		t.Error("whitespace-only group message should be rejected")
	}
}

func TestMentionOnlyMessageRejected(t *testing.T) {
	c := newTestClassifier()

	res := c.Classify("@ai response", true)
	if res.Admitted {
		t.Errorf("mention-only message should be rejected, got '%s'", res.Text)
	}
}

func TestCommandOnlyMessageRejected(t *testing.T) {
	c := newTestClassifier()

	res := c.Classify("/bot", true)
	if res.Admitted {
		t.Errorf("command-only message should be rejected, got '%s'", res.Text)
	}
}

func TestMentionCasePreservedInOutput(t *testing.T) {
	c := newTestClassifier()

	res := c.Classify("@AI Response tell me about Go", true)
	if !res.Admitted {
		t.Fatal("mixed-case mention should still trigger")
	}

	if res.Text != "tell me about Go" {
		t.Errorf("expected 'tell me about Go', got '%s'", res.Text)
	}
}

func TestDirectMessageMentionsStripped(t *testing.T) {
	c := newTestClassifier()

	res := c.Classify("ask @someone about lunch", false)
	if !res.Admitted {
		t.Fatal("direct message should be admitted")
	}

	if res.Text != "ask  about lunch" {
		t.Errorf("unexpected cleaned text: '%s'", res.Text)
	}
}

func TestEmptyConfigGroupNeverTriggers(t *testing.T) {
	c := New(Config{})

	if c.Classify("@anyone hello", true).Admitted {
		t.Error("group message should be rejected when nothing is configured")
	}

	res := c.Classify("hello", false)
	if !res.Admitted || res.Text != "hello" {
		t.Errorf("direct message should still be admitted, got %+v", res)
	}
}
