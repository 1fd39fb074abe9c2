package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/davicafu/academylab/shared/domain"
)

func validCourse() *Course {
	return &Course{
		Title:  "Intro to Go",
		Type:   TypeOnline,
		Access: AccessPaid,
		Level:  LevelBeginner,
		Status: StatusDraft,
		Price:  100,
	}
}

func f64(v float64) *float64 { return &v }

func day(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestCourseValidate_PriceAccess(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Course)
		msg    string
	}{
		{"free with price", func(c *Course) { c.Access = AccessFree; c.Price = 50 }, MsgFreeCoursePrice},
		{"paid without price", func(c *Course) { c.Price = 0 }, MsgPaidCoursePrice},
		{"discount above price", func(c *Course) { c.DiscountPrice = f64(150) }, MsgDiscountAbovePrice},
		{"negative price", func(c *Course) { c.Price = -1 }, MsgNegativePrice},
		{"offline without location", func(c *Course) { c.Type = TypeOffline }, MsgOfflineLocation},
		{"enrollment window", func(c *Course) {
			c.EnrollmentStart, c.EnrollmentEnd = day("2025-06-10"), day("2025-06-01")
		}, MsgEnrollmentWindow},
		{"course dates", func(c *Course) { c.StartDate, c.EndDate = day("2025-06-10"), day("2025-06-01") }, MsgCourseDateRange},
		{"bad enum", func(c *Course) { c.Level = "EXPERT" }, MsgInvalidCourseFields},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validCourse()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, sharedDomain.IsValidation(err))
			assert.EqualError(t, err, tc.msg)
		})
	}
}

func TestCourseValidate_OK(t *testing.T) {
	c := validCourse()
	c.DiscountPrice = f64(100)
	c.EnrollmentStart, c.EnrollmentEnd = day("2025-06-01"), day("2025-06-01")
	assert.NoError(t, c.Validate())

	free := validCourse()
	free.Access, free.Price = AccessFree, 0
	free.Type, free.Location = TypeOffline, "Dhaka"
	assert.NoError(t, free.Validate())
}

func TestDefaultMetaTitle(t *testing.T) {
	c := validCourse()
	c.DefaultMetaTitle()
	assert.Equal(t, "Intro to Go | Premium Academy", c.MetaTitle)

	c.MetaTitle = "Custom"
	c.DefaultMetaTitle()
	assert.Equal(t, "Custom", c.MetaTitle)
}
