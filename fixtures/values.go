package fixtures

import (
	"math/rand"
	"reflect"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"

	"github.com/forkkit/ihp/schema"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randStringRunes(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateValue returns a random value for the column. Columns bound
// to an enum draw one of its members; unknown custom types produce
// nil.
func (c *Column) GenerateValue() interface{} {
	if len(c.EnumValues) > 0 {
		return c.EnumValues[rand.Intn(len(c.EnumValues))]
	}
	switch c.Type.Kind {
	case schema.PUUID:
		return uuid.New()
	case schema.PText:
		return textValue(c.Name)
	case schema.PInt:
		return rand.Int31()
	case schema.PBigInt:
		return rand.Int63()
	case schema.PBoolean:
		return rand.Intn(2) == 0
	case schema.PReal:
		return rand.Float32()
	case schema.PDouble:
		return rand.Float64()
	case schema.PDate:
		return time.Now().AddDate(0, 0, rand.Intn(1000)-500)
	case schema.PTimestamp:
		return time.Now().Add(time.Duration(rand.Intn(1000)-500) * time.Hour)
	case schema.PTime:
		return time.Now().Add(time.Duration(rand.Intn(1000)-500) * time.Second)
	case schema.PBinary:
		return []byte(randStringRunes(rand.Intn(20) + 1))
	default:
		return nil
	}
}

// textValue picks a faker preset when the column name suggests one,
// otherwise a random letter run.
func textValue(name string) interface{} {
	switch {
	case strings.Contains(name, "email"):
		return faker.Email()
	case strings.Contains(name, "phone"):
		return faker.Phonenumber()
	case strings.Contains(name, "name"):
		return faker.FirstName()
	case strings.Contains(name, "address"):
		addr, _ := faker.GetAddress().RealWorld(reflect.Value{})
		a := addr.(faker.RealAddress)
		return a.Address
	}
	return randStringRunes(rand.Intn(20) + 1)
}
