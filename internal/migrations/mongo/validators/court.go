package validators

import "go.mongodb.org/mongo-driver/bson"

var CourtValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "hourly_rate", "light_surcharge", "is_active", "operating_hours", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":             bson.M{"bsonType": "objectId"},
			"name":            bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
			"description":     bson.M{"bsonType": "string", "maxLength": 1000},
			"hourly_rate":     bson.M{"bsonType": "decimal", "minimum": 0},
			"light_surcharge": bson.M{"bsonType": "decimal", "minimum": 0},
			"is_active":       bson.M{"bsonType": "bool"},
			"operating_hours": bson.M{
				"bsonType": "object",
				"required": []string{"opens_at", "closes_at"},
				"properties": bson.M{
					"opens_at":  bson.M{"bsonType": "string", "pattern": clockPattern},
					"closes_at": bson.M{"bsonType": "string", "pattern": clockPattern},
				},
			},
			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
