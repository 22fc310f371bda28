package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"day",
			"start_minute",
			"end_minute",
			"room",
			"attendance",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"day": bson.M{
				"bsonType": "date",
			},

			"start_minute": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  1439,
			},

			"end_minute": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  1440,
			},

			"room": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"area": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"attendance": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
