package validators

import (
	"courtly/pkg/status"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	objectIDHexPattern = "^[0-9a-f]{24}$"
	datePattern        = `^\d{4}-\d{2}-\d{2}$`
	clockPattern       = `^([01]\d|2[0-3]):[0-5]\d$`
	referencePattern   = "^BK-[0-9A-F]{10}$"
)

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"booking_reference",
			"tenant_id",
			"court_id",
			"date",
			"start_time",
			"end_time",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"booking_reference": bson.M{
				"bsonType": "string",
				"pattern":  referencePattern,
			},

			"tenant_id": bson.M{
				"bsonType": "string",
				"pattern":  objectIDHexPattern,
			},

			"court_id": bson.M{
				"bsonType": "string",
				"pattern":  objectIDHexPattern,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  clockPattern,
			},

			"end_time": bson.M{
				"bsonType": "string",
				"pattern":  clockPattern,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     status.Values(),
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
